package app

// DayEntry is what was recorded for one activity on one date.
type DayEntry struct {
	Quantity float64
	Notes    string
}

// EntryInput is one line of a save batch. A zero quantity clears the day.
type EntryInput struct {
	ActivityID string
	Quantity   float64
	Notes      string
}

type SaveResult struct {
	Date    string
	Created int
	Updated int
	Deleted int
	Skipped int
	NoOps   int
}

type HistoryEntry struct {
	EntryID     string
	ActivityID  string
	Description string
	Unit        string
	Quantity    float64
	EnteredBy   string
	Notes       string
}

type HistoryDay struct {
	Date          string
	TotalQuantity float64
	Entries       []HistoryEntry
}

type HistoryView struct {
	Days    []HistoryDay
	HasMore bool
}
