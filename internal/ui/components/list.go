package components

// List is a scrolling cursor over Len rows. Views keep their own items and
// ask the list which window is on screen.
type List struct {
	Len      int
	Cursor   int
	Offset   int
	PageSize int
}

// NewList creates a list with the given page size.
func NewList(pageSize int) *List {
	if pageSize < 1 {
		pageSize = 1
	}
	return &List{PageSize: pageSize}
}

// Reset sets the row count and moves the cursor to the top.
func (l *List) Reset(n int) {
	l.Len = n
	l.Cursor = 0
	l.Offset = 0
}

// Resize changes the page size and keeps the cursor visible.
func (l *List) Resize(pageSize int) {
	if pageSize < 1 {
		pageSize = 1
	}
	l.PageSize = pageSize
	l.follow()
}

// Down moves the cursor down.
func (l *List) Down() {
	if l.Cursor < l.Len-1 {
		l.Cursor++
		l.follow()
	}
}

// Up moves the cursor up.
func (l *List) Up() {
	if l.Cursor > 0 {
		l.Cursor--
		l.follow()
	}
}

// Select moves the cursor to idx if it is in range.
func (l *List) Select(idx int) {
	if idx < 0 || idx >= l.Len {
		return
	}
	l.Cursor = idx
	l.follow()
}

// Window returns the half-open range of rows currently on screen.
func (l *List) Window() (start, end int) {
	if l.Len == 0 {
		return 0, 0
	}
	end = l.Offset + l.PageSize
	if end > l.Len {
		end = l.Len
	}
	return l.Offset, end
}

// RelToAbs converts a row on screen to its absolute index.
func (l *List) RelToAbs(rel int) int {
	return l.Offset + rel
}

func (l *List) follow() {
	if l.Cursor >= l.Offset+l.PageSize {
		l.Offset = l.Cursor - l.PageSize + 1
	}
	if l.Cursor < l.Offset {
		l.Offset = l.Cursor
	}
	if l.Offset < 0 {
		l.Offset = 0
	}
}
