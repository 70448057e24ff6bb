package dto

// CreateSlotRequest entrada para crear un turno.
type CreateSlotRequest struct {
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Capacity  int    `json:"capacity"`
}

// SlotAssignRequest cliente a ubicar en el turno.
type SlotAssignRequest struct {
	ClientID string `json:"client_id"`
}

// SlotResponse salida de un turno con su ocupación.
type SlotResponse struct {
	ID        string   `json:"id"`
	Date      string   `json:"date"`
	StartTime string   `json:"start_time"`
	EndTime   string   `json:"end_time"`
	Capacity  int      `json:"capacity"`
	Free      int      `json:"free"`
	ClientIDs []string `json:"client_ids"`
}
