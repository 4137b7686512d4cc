package testhelpers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/hostelworks/hostel-console/internal/models"
)

func (f *FakeAPI) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		message(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	f.mu.Lock()
	valid := body.Username == f.username && body.Password == f.password
	token, omit, user := f.token, f.omitToken, f.loginUser.Clone()
	f.mu.Unlock()
	if !valid {
		message(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	resp := map[string]any{"message": "Authentication successful"}
	if !omit {
		resp["token"] = token
	}
	if user != nil {
		resp["user"] = user
	}
	writeJSON(w, http.StatusOK, resp)
}

func (f *FakeAPI) handleListRooms(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, f.Rooms())
}

func (f *FakeAPI) handleCreateRoom(w http.ResponseWriter, r *http.Request) {
	var data map[string]any
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		message(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	for _, field := range []string{"room_number", "capacity", "room_type", "price_per_month"} {
		if _, ok := data[field]; !ok {
			message(w, http.StatusBadRequest, "Missing required field: %s", field)
			return
		}
	}
	capacity, err := number(data["capacity"])
	if err != nil {
		message(w, http.StatusBadRequest, "Invalid numeric value: %v", err)
		return
	}
	price, err := number(data["price_per_month"])
	if err != nil {
		message(w, http.StatusBadRequest, "Invalid numeric value: %v", err)
		return
	}
	if capacity <= 0 {
		message(w, http.StatusBadRequest, "Capacity must be greater than 0")
		return
	}
	if price <= 0 {
		message(w, http.StatusBadRequest, "Price must be greater than 0")
		return
	}
	roomNumber := fmt.Sprint(data["room_number"])
	roomType, _ := data["room_type"].(string)

	f.mu.Lock()
	for _, existing := range f.rooms {
		if existing.RoomNumber == roomNumber {
			f.mu.Unlock()
			message(w, http.StatusBadRequest, "Room number already exists")
			return
		}
	}
	room := models.Room{
		ID:            f.allocID(),
		RoomNumber:    roomNumber,
		RoomType:      models.RoomType(roomType),
		Capacity:      int(capacity),
		PricePerMonth: price,
		Status:        models.RoomStatusAvailable,
	}
	f.rooms = append(f.rooms, room)
	f.mu.Unlock()

	writeJSON(w, http.StatusCreated, map[string]any{"message": "Room created successfully", "room": room})
}

func (f *FakeAPI) handleListMembers(w http.ResponseWriter, _ *http.Request) {
	f.mu.Lock()
	out := make([]models.Member, 0, len(f.members))
	for _, m := range f.members {
		if m.RoomID != nil {
			for _, room := range f.rooms {
				if room.ID == *m.RoomID {
					num := room.RoomNumber
					m.RoomNumber = &num
				}
			}
		}
		out = append(out, m)
	}
	f.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (f *FakeAPI) handleCreateMember(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name             string `json:"name"`
		Email            string `json:"email"`
		Phone            string `json:"phone"`
		RoomID           int    `json:"room_id"`
		EmergencyContact string `json:"emergency_contact"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		message(w, http.StatusBadRequest, "Error: %v", err)
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	idx := -1
	for i, room := range f.rooms {
		if room.ID == body.RoomID {
			idx = i
		}
	}
	if idx < 0 {
		message(w, http.StatusBadRequest, "Error: room %d not found", body.RoomID)
		return
	}
	if f.rooms[idx].CurrentOccupancy >= f.rooms[idx].Capacity {
		message(w, http.StatusBadRequest, "Room is full")
		return
	}
	roomID := body.RoomID
	f.members = append(f.members, models.Member{
		ID:               f.allocID(),
		Name:             body.Name,
		Email:            body.Email,
		Phone:            body.Phone,
		RoomID:           &roomID,
		EmergencyContact: body.EmergencyContact,
		JoinDate:         time.Now().Format("2006-01-02"),
		Status:           "active",
	})
	f.rooms[idx].CurrentOccupancy++
	if f.rooms[idx].CurrentOccupancy >= f.rooms[idx].Capacity {
		f.rooms[idx].Status = models.RoomStatusOccupied
	}
	writeJSON(w, http.StatusCreated, map[string]string{"message": "Member added successfully"})
}

func (f *FakeAPI) handleListPayments(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, f.sortedPayments("", ""))
}

func (f *FakeAPI) handleCreatePayment(w http.ResponseWriter, r *http.Request) {
	var data map[string]any
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		message(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	for _, field := range []string{"member_id", "amount", "payment_type"} {
		if _, ok := data[field]; !ok {
			message(w, http.StatusBadRequest, "Missing required field: %s", field)
			return
		}
	}
	amount, err := number(data["amount"])
	if err != nil {
		message(w, http.StatusBadRequest, "Invalid numeric value: %v", err)
		return
	}
	if amount <= 0 {
		message(w, http.StatusBadRequest, "Amount must be greater than 0")
		return
	}
	memberID, err := number(data["member_id"])
	if err != nil {
		message(w, http.StatusBadRequest, "Invalid numeric value: %v", err)
		return
	}

	f.mu.Lock()
	found := false
	for _, m := range f.members {
		if m.ID == int(memberID) {
			found = true
		}
	}
	if !found {
		f.mu.Unlock()
		message(w, http.StatusBadRequest, "Member not found")
		return
	}
	payType, _ := data["payment_type"].(string)
	desc, _ := data["description"].(string)
	payment := models.Payment{
		ID:          f.allocID(),
		MemberID:    int(memberID),
		Amount:      amount,
		PaymentType: models.PaymentType(payType),
		Description: desc,
		PaymentDate: time.Now().Format("2006-01-02"),
		Status:      models.PaymentStatusCompleted,
	}
	if due, ok := data["due_date"].(string); ok && due != "" {
		payment.DueDate = &due
	}
	f.payments = append(f.payments, payment)
	f.mu.Unlock()

	writeJSON(w, http.StatusCreated, map[string]any{"message": "Payment recorded successfully", "payment": payment})
}

func (f *FakeAPI) handleOccupancyReport(w http.ResponseWriter, _ *http.Request) {
	rooms := f.Rooms()
	rows := make([]models.OccupancyReportRow, 0, len(rooms))
	for _, room := range rooms {
		rows = append(rows, models.OccupancyReportRow{
			RoomNumber:       room.RoomNumber,
			Capacity:         room.Capacity,
			CurrentOccupancy: room.CurrentOccupancy,
			OccupancyRate:    room.OccupancyRatio() * 100,
		})
	}
	writeJSON(w, http.StatusOK, rows)
}

func (f *FakeAPI) handlePaymentsReport(w http.ResponseWriter, r *http.Request) {
	start := r.URL.Query().Get("start_date")
	end := r.URL.Query().Get("end_date")
	payments := f.sortedPayments(start, end)
	total := 0.0
	for _, p := range payments {
		total += p.Amount
	}
	writeJSON(w, http.StatusOK, models.PaymentsReportResult{Payments: payments, TotalAmount: total})
}

// sortedPayments returns payments inside [start, end], newest first.
func (f *FakeAPI) sortedPayments(start, end string) []models.Payment {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Payment, 0, len(f.payments))
	for _, p := range f.payments {
		if start != "" && p.PaymentDate < start {
			continue
		}
		if end != "" && p.PaymentDate > end {
			continue
		}
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].PaymentDate > out[j].PaymentDate })
	return out
}

func number(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case string:
		return strconv.ParseFloat(n, 64)
	default:
		return 0, fmt.Errorf("%v is not numeric", v)
	}
}
