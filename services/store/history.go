package store

import "carelink/models"

// History is a LIFO of previously visited frames. Values are never modified
// in place; Push and Pop return new histories.
type History []models.Frame

// Push returns h with f on top. When limit is positive the oldest frames are
// dropped so that at most limit frames remain.
func (h History) Push(f models.Frame, limit int) History {
	out := make(History, 0, len(h)+1)
	out = append(out, h...)
	out = append(out, f.Clone())
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out
}

// Pop returns h without its top frame, the frame removed, and false when h is empty.
func (h History) Pop() (History, models.Frame, bool) {
	if len(h) == 0 {
		return h, models.Frame{}, false
	}
	top := h[len(h)-1]
	if len(h) == 1 {
		return nil, top, true
	}
	return h[: len(h)-1 : len(h)-1], top, true
}

// Peek returns the top frame without removing it.
func (h History) Peek() (models.Frame, bool) {
	if len(h) == 0 {
		return models.Frame{}, false
	}
	return h[len(h)-1], true
}
