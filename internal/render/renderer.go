package render

type Renderer interface {
	Init() error
	Deinit() error
	Fill(row, column uint16, message string)
	Flush() error
}
