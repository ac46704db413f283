package browser

// History is the list of pages visited in this session, oldest first.
// Going back discards the newest entry; there is no forward stack.
type History struct {
	entries []string
}

// NewHistory creates an empty history.
func NewHistory() *History {
	return &History{}
}

// Push appends url as the newest entry.
func (h *History) Push(url string) {
	h.entries = append(h.entries, url)
}

// Back drops the newest entry and returns the one before it. It reports
// false and changes nothing when fewer than two entries exist.
func (h *History) Back() (string, bool) {
	if !h.CanGoBack() {
		return "", false
	}
	h.entries = h.entries[:len(h.entries)-1]
	return h.entries[len(h.entries)-1], true
}

// CanGoBack reports whether Back would succeed.
func (h *History) CanGoBack() bool {
	return len(h.entries) > 1
}

// Current returns the newest entry, or "" when the history is empty.
func (h *History) Current() string {
	if len(h.entries) == 0 {
		return ""
	}
	return h.entries[len(h.entries)-1]
}

// Entries returns a copy of all entries, oldest first.
func (h *History) Entries() []string {
	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}

// Len returns the number of entries.
func (h *History) Len() int {
	return len(h.entries)
}
