package main

type Mode int

const (
	ModePaint Mode = iota
	ModeErase
	ModePan
	ModeSelect
)

type ActionType int

const (
	ActionPaint ActionType = iota
	ActionErase
	ActionMove
	ActionDelete
	ActionCut
	ActionPaste
	ActionDeleteGroup
)

type PointerAction int

const (
	PointerPress PointerAction = iota
	PointerDrag
	PointerRelease
	PointerMove
)

type PointerButton int

const (
	ButtonNone PointerButton = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
)

const (
	// BaseCellPixels is the on-screen size of one cell at zoom 1.
	BaseCellPixels = 24.0
	// At MinZoom a 16x16 block of cells covers one default-zoom cell.
	MinZoom = 1.0 / 16.0
	MaxZoom = 4.0

	ChunkSize        = 64
	ChunkTextureSize = 512
	CellTextureSize  = ChunkTextureSize / ChunkSize

	defaultHistorySize     = 50
	defaultZoomStep        = 1.1
	defaultPixelsPerColumn = 4

	// gridLineMinScale is the smallest on-screen cell size that still gets grid lines.
	gridLineMinScale = 6.0

	// maxPreviewPixels caps the side of a cached move preview image.
	maxPreviewPixels = 4096
)

func (m Mode) String() string {
	switch m {
	case ModePaint:
		return "PAINT"
	case ModeErase:
		return "ERASE"
	case ModePan:
		return "PAN"
	case ModeSelect:
		return "SELECT"
	default:
		return "UNKNOWN"
	}
}

func (a ActionType) String() string {
	switch a {
	case ActionPaint:
		return "paint"
	case ActionErase:
		return "erase"
	case ActionMove:
		return "move"
	case ActionDelete:
		return "delete"
	case ActionCut:
		return "cut"
	case ActionPaste:
		return "paste"
	case ActionDeleteGroup:
		return "delete group"
	default:
		return "action"
	}
}
