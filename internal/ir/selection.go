package ir

// Selection is a range between two block positions.
// Anchor is where the selection started; Focus is where it ends.
// When anchor and focus coincide the selection is collapsed (a caret).
// Selection is an immutable value type.
type Selection struct {
	AnchorKey    Key  `json:"anchor_key" yaml:"anchor_key"`
	AnchorOffset int  `json:"anchor_offset" yaml:"anchor_offset"`
	FocusKey     Key  `json:"focus_key" yaml:"focus_key"`
	FocusOffset  int  `json:"focus_offset" yaml:"focus_offset"`
	IsBackward   bool `json:"is_backward,omitempty" yaml:"is_backward,omitempty"`
	HasFocus     bool `json:"has_focus,omitempty" yaml:"has_focus,omitempty"`
}

// Collapsed creates a caret selection at offset inside the block key.
func Collapsed(key Key, offset int) Selection {
	return Selection{
		AnchorKey:    key,
		AnchorOffset: offset,
		FocusKey:     key,
		FocusOffset:  offset,
	}
}

// StartKey returns the key of the block where the selection starts.
func (s Selection) StartKey() Key {
	if s.IsBackward {
		return s.FocusKey
	}
	return s.AnchorKey
}

// StartOffset returns the offset where the selection starts.
func (s Selection) StartOffset() int {
	if s.IsBackward {
		return s.FocusOffset
	}
	return s.AnchorOffset
}

// EndKey returns the key of the block where the selection ends.
func (s Selection) EndKey() Key {
	if s.IsBackward {
		return s.AnchorKey
	}
	return s.FocusKey
}

// EndOffset returns the offset where the selection ends.
func (s Selection) EndOffset() int {
	if s.IsBackward {
		return s.AnchorOffset
	}
	return s.FocusOffset
}

// IsCollapsed returns true if the selection has no extent.
func (s Selection) IsCollapsed() bool {
	return s.AnchorKey == s.FocusKey && s.AnchorOffset == s.FocusOffset
}

// WithOffsets returns a copy with both anchor and focus offsets set.
func (s Selection) WithOffsets(offset int) Selection {
	s.AnchorOffset = offset
	s.FocusOffset = offset
	return s
}

// WithFocus returns a copy with HasFocus set.
func (s Selection) WithFocus(focus bool) Selection {
	s.HasFocus = focus
	return s
}
