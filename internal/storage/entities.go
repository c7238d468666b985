package storage

// Task mirrors the todos table one to one. Date is YYYY-MM-DD, Time is HH:MM,
// Priority is one of low/medium/high. NotificationID is nil until a reminder
// has been scheduled for the row.
type Task struct {
	ID             int64
	Todo           string
	Completed      bool
	Date           string
	Time           string
	Priority       string
	NotificationID *string
}
