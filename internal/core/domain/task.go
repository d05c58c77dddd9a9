package domain

// Task is one entry of the read-only reward catalog.
type Task struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"desc"`
	Reward      int64  `json:"reward"`
}
