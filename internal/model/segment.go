package model

// SegmentKind classifies one segment of a multi-segment container file.
type SegmentKind int

const (
	SegmentUnknown SegmentKind = iota
	SegmentImage
	SegmentTable
	SegmentEmpty
)

func (k SegmentKind) String() string {
	switch k {
	case SegmentImage:
		return "image"
	case SegmentTable:
		return "table"
	case SegmentEmpty:
		return "empty"
	default:
		return "unknown"
	}
}

// HeaderCard is one key/value entry of a segment header.
type HeaderCard struct {
	Name    string
	Value   interface{}
	Comment string
}
