package utils

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func testKey() []byte {
	key := make([]byte, KeySize)
	for i := range key {
		key[i] = byte(i)
	}
	return key
}

func TestAESGCMEncryptionDecryption(t *testing.T) {
	plaintext := "session-token-abc123"

	ciphertext, err := Encrypt(testKey(), plaintext)
	if err != nil {
		t.Fatalf("Encrypt returned error: %v", err)
	}
	if strings.Contains(ciphertext, plaintext) {
		t.Fatalf("ciphertext leaks plaintext: %s", ciphertext)
	}

	decrypted, err := Decrypt(testKey(), ciphertext)
	if err != nil {
		t.Fatalf("Decrypt returned error: %v", err)
	}
	if decrypted != plaintext {
		t.Fatalf("Expected decrypted text '%s', got '%s'", plaintext, decrypted)
	}
}

func TestAESGCMInvalidKey(t *testing.T) {
	shortKey := []byte("not-32-bytes")
	_, err := Encrypt(shortKey, "some text")
	if !errors.Is(err, ErrInvalidKey) {
		t.Fatalf("Expected ErrInvalidKey, got %v", err)
	}

	_, err = Decrypt(shortKey, "some ciphertext")
	if !errors.Is(err, ErrInvalidKey) {
		t.Fatalf("Expected ErrInvalidKey, got %v", err)
	}
}

func TestAESGCMWrongKeyFails(t *testing.T) {
	ciphertext, err := Encrypt(testKey(), "hello")
	if err != nil {
		t.Fatalf("Encrypt returned error: %v", err)
	}
	other := bytes.Repeat([]byte{0xAA}, KeySize)
	if _, err := Decrypt(other, ciphertext); err == nil {
		t.Fatal("Expected decryption with the wrong key to fail")
	}
}

func TestAESGCMMalformedCiphertext(t *testing.T) {
	if _, err := Decrypt(testKey(), "%%%not-base64"); err == nil {
		t.Fatal("Expected error for non-base64 ciphertext")
	}
	if _, err := Decrypt(testKey(), "AAAA"); err == nil {
		t.Fatal("Expected error for ciphertext shorter than the nonce")
	}
}

func TestDeriveKey(t *testing.T) {
	salt := []byte("0123456789abcdef")
	k1, err := DeriveKey([]byte("hunter2"), salt)
	if err != nil {
		t.Fatalf("DeriveKey returned error: %v", err)
	}
	if len(k1) != KeySize {
		t.Fatalf("Expected %d-byte key, got %d", KeySize, len(k1))
	}
	k2, _ := DeriveKey([]byte("hunter2"), salt)
	if !bytes.Equal(k1, k2) {
		t.Fatal("DeriveKey is not deterministic")
	}
	k3, _ := DeriveKey([]byte("hunter2"), []byte("another-salt-val"))
	if bytes.Equal(k1, k3) {
		t.Fatal("Different salts produced the same key")
	}

	if _, err := DeriveKey(nil, salt); !errors.Is(err, ErrInvalidKey) {
		t.Fatalf("Expected ErrInvalidKey for empty passphrase, got %v", err)
	}
	if _, err := DeriveKey([]byte("x"), nil); !errors.Is(err, ErrInvalidKey) {
		t.Fatalf("Expected ErrInvalidKey for empty salt, got %v", err)
	}
}

func TestDecodeKey(t *testing.T) {
	// 32 zero bytes, standard alphabet
	key, err := DecodeKey("AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA=")
	if err != nil {
		t.Fatalf("DecodeKey returned error: %v", err)
	}
	if len(key) != KeySize {
		t.Fatalf("Expected %d bytes, got %d", KeySize, len(key))
	}

	if _, err := DecodeKey("c2hvcnQ="); !errors.Is(err, ErrInvalidKey) {
		t.Fatalf("Expected ErrInvalidKey for short key, got %v", err)
	}
	if _, err := DecodeKey("!!!"); !errors.Is(err, ErrInvalidKey) {
		t.Fatalf("Expected ErrInvalidKey for garbage, got %v", err)
	}
}
