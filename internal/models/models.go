package models

// PendingRequest is one reading-list row flagged for collection, as read
// from the destination database at batch start.
type PendingRequest struct {
	PageID   string
	Title    string
	KyoboURL string
}

// BookMetadata is the scraped record for one catalog entry. Every field is
// independently optional; the zero value means "not found". Pages uses 0 for
// absent since no real book reports a zero page count.
type BookMetadata struct {
	KyoboID   string
	DetailURL string
	Title     string
	CoverURL  string
	Author    string
	Publisher string
	Pages     int
	Genre     string
	ISBN      string
}

// Merge fills absent fields of m from other. Fields already set on m are
// never overwritten, so earlier extraction stages always win.
func (m *BookMetadata) Merge(other BookMetadata) {
	if m.KyoboID == "" {
		m.KyoboID = other.KyoboID
	}
	if m.DetailURL == "" {
		m.DetailURL = other.DetailURL
	}
	if m.Title == "" {
		m.Title = other.Title
	}
	if m.CoverURL == "" {
		m.CoverURL = other.CoverURL
	}
	if m.Author == "" {
		m.Author = other.Author
	}
	if m.Publisher == "" {
		m.Publisher = other.Publisher
	}
	if m.Pages == 0 {
		m.Pages = other.Pages
	}
	if m.Genre == "" {
		m.Genre = other.Genre
	}
	if m.ISBN == "" {
		m.ISBN = other.ISBN
	}
}

// HasCore reports whether any of the fields worth a rendered-page retry
// (title, author, publisher, cover) were extracted.
func (m *BookMetadata) HasCore() bool {
	return m.Title != "" || m.Author != "" || m.Publisher != "" || m.CoverURL != ""
}
