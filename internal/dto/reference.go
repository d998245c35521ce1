package dto

// ── Reference data DTOs (read-only lookups) ──

// ThematicAreaResponse is one thematic area lookup row.
type ThematicAreaResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// CenterResponse is one service center lookup row.
type CenterResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
}
