// internal/models/user_profile.go
package models

// UserProfile is whatever the server returns for the logged-in user.
// The console passes it through untouched.
type UserProfile map[string]any

// Clone returns a shallow copy so callers cannot mutate session state.
func (p UserProfile) Clone() UserProfile {
	if p == nil {
		return nil
	}
	out := make(UserProfile, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// String returns the value under key when it is a string.
func (p UserProfile) String(key string) string {
	if v, ok := p[key].(string); ok {
		return v
	}
	return ""
}
