package recording

import (
	"fmt"
	"image"

	"github.com/gogpu/uibatch"
)

// CommandType identifies the type of a command.
type CommandType uint8

const (
	// Buffer commands
	CmdResizeVertexBuffer CommandType = iota // Create or resize the vertex buffer
	CmdUploadVertexData                      // Upload vertex words

	// Frame commands
	CmdBeginFrame // Begin a frame
	CmdEndFrame   // End and submit a frame

	// State commands
	CmdSetShaders         // Select shader variants
	CmdSetBlendMode       // Set blend mode
	CmdSetScissor         // Enable/disable scissor test
	CmdSetTexture         // Bind a texture
	CmdSetShaderParameter // Set a named uniform

	// Drawing commands
	CmdDraw // Non-indexed draw
)

// commandTypeNames maps CommandType values to their string representation.
var commandTypeNames = [...]string{
	CmdResizeVertexBuffer: "ResizeVertexBuffer",
	CmdUploadVertexData:   "UploadVertexData",
	CmdBeginFrame:         "BeginFrame",
	CmdEndFrame:           "EndFrame",
	CmdSetShaders:         "SetShaders",
	CmdSetBlendMode:       "SetBlendMode",
	CmdSetScissor:         "SetScissor",
	CmdSetTexture:         "SetTexture",
	CmdSetShaderParameter: "SetShaderParameter",
	CmdDraw:               "Draw",
}

// String returns the string representation of a CommandType.
func (c CommandType) String() string {
	if int(c) < len(commandTypeNames) {
		return commandTypeNames[c]
	}
	return "Unknown"
}

// Command is the interface implemented by all command types.
type Command interface {
	// Type returns the CommandType for this command.
	Type() CommandType

	// String formats the command for traces.
	String() string
}

// ResizeVertexBuffer records a vertex buffer (re)allocation.
type ResizeVertexBuffer struct {
	From, To int
	Mask     uibatch.ElementMask
}

func (ResizeVertexBuffer) Type() CommandType { return CmdResizeVertexBuffer }

func (c ResizeVertexBuffer) String() string {
	return fmt.Sprintf("ResizeVertexBuffer %d -> %d", c.From, c.To)
}

// UploadVertexData records a vertex upload. Data is a copy of the words.
type UploadVertexData struct {
	Data []float32
}

func (UploadVertexData) Type() CommandType { return CmdUploadVertexData }

// Vertices returns the number of uploaded vertices.
func (c UploadVertexData) Vertices() int {
	return len(c.Data) / uibatch.VertexStride
}

func (c UploadVertexData) String() string {
	return fmt.Sprintf("UploadVertexData %d vertices", c.Vertices())
}

// BeginFrame records the start of a frame.
type BeginFrame struct {
	Width, Height int
}

func (BeginFrame) Type() CommandType { return CmdBeginFrame }

func (c BeginFrame) String() string {
	return fmt.Sprintf("BeginFrame %dx%d", c.Width, c.Height)
}

// EndFrame records the end of a frame.
type EndFrame struct{}

func (EndFrame) Type() CommandType { return CmdEndFrame }
func (EndFrame) String() string    { return "EndFrame" }

// SetShaders records a shader selection.
type SetShaders struct {
	Pair uibatch.ShaderPair
}

func (SetShaders) Type() CommandType { return CmdSetShaders }

func (c SetShaders) String() string {
	return "SetShaders " + c.Pair.String()
}

// SetBlendMode records a blend mode change.
type SetBlendMode struct {
	Mode uibatch.BlendMode
}

func (SetBlendMode) Type() CommandType { return CmdSetBlendMode }

func (c SetBlendMode) String() string {
	return "SetBlendMode " + c.Mode.String()
}

// SetScissor records a scissor change.
type SetScissor struct {
	Enable bool
	Rect   image.Rectangle
}

func (SetScissor) Type() CommandType { return CmdSetScissor }

func (c SetScissor) String() string {
	if !c.Enable {
		return "SetScissor off"
	}
	return "SetScissor " + c.Rect.String()
}

// SetTexture records a texture binding. Ref is InvalidRef for nil.
type SetTexture struct {
	Slot int
	Ref  TextureRef
}

func (SetTexture) Type() CommandType { return CmdSetTexture }

func (c SetTexture) String() string {
	if !c.Ref.IsValid() {
		return fmt.Sprintf("SetTexture %d none", c.Slot)
	}
	return fmt.Sprintf("SetTexture %d #%d", c.Slot, c.Ref)
}

// SetShaderParameter records a uniform update.
type SetShaderParameter struct {
	Name  string
	Value any
}

func (SetShaderParameter) Type() CommandType { return CmdSetShaderParameter }

func (c SetShaderParameter) String() string {
	return "SetShaderParameter " + c.Name
}

// Draw records a draw call.
type Draw struct {
	Primitive uibatch.PrimitiveType
	Start     int
	Count     int
}

func (Draw) Type() CommandType { return CmdDraw }

func (c Draw) String() string {
	return fmt.Sprintf("Draw %s [%d, %d)", c.Primitive, c.Start, c.Start+c.Count)
}
