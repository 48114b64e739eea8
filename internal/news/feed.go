package news

// Feed is the unbounded news feed. Reads are newest first.
type Feed struct {
	// stored oldest first; reversed on read
	entries []FeedEntry
}

// NewFeed creates an empty feed.
func NewFeed() *Feed {
	return &Feed{}
}

// Add records an entry as the newest item.
func (f *Feed) Add(e FeedEntry) {
	f.entries = append(f.entries, e)
}

// Entries returns a copy of every entry, newest first.
func (f *Feed) Entries() []FeedEntry {
	return f.Latest(len(f.entries))
}

// Latest returns up to n entries, newest first.
func (f *Feed) Latest(n int) []FeedEntry {
	if n <= 0 || len(f.entries) == 0 {
		return nil
	}
	if n > len(f.entries) {
		n = len(f.entries)
	}
	out := make([]FeedEntry, n)
	last := len(f.entries) - 1
	for i := 0; i < n; i++ {
		out[i] = f.entries[last-i]
	}
	return out
}

// Len returns the number of entries.
func (f *Feed) Len() int {
	return len(f.entries)
}
