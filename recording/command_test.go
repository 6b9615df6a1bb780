package recording

import (
	"image"
	"testing"

	"github.com/gogpu/uibatch"
)

func TestCommandType_String(t *testing.T) {
	tests := []struct {
		ct   CommandType
		want string
	}{
		{CmdResizeVertexBuffer, "ResizeVertexBuffer"},
		{CmdUploadVertexData, "UploadVertexData"},
		{CmdBeginFrame, "BeginFrame"},
		{CmdEndFrame, "EndFrame"},
		{CmdSetShaders, "SetShaders"},
		{CmdSetBlendMode, "SetBlendMode"},
		{CmdSetScissor, "SetScissor"},
		{CmdSetTexture, "SetTexture"},
		{CmdSetShaderParameter, "SetShaderParameter"},
		{CmdDraw, "Draw"},
		{CommandType(254), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.ct.String(); got != tt.want {
				t.Errorf("CommandType.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCommandInterface(t *testing.T) {
	commands := []Command{
		ResizeVertexBuffer{From: 0, To: 6, Mask: uibatch.UIElements},
		UploadVertexData{Data: make([]float32, 2*uibatch.VertexStride)},
		BeginFrame{Width: 10, Height: 20},
		EndFrame{},
		SetShaders{Pair: uibatch.DiffShaders},
		SetBlendMode{Mode: uibatch.BlendAlpha},
		SetScissor{Enable: true, Rect: image.Rect(0, 0, 5, 5)},
		SetTexture{Slot: 0, Ref: InvalidRef},
		SetShaderParameter{Name: uibatch.ParamModel, Value: uibatch.Identity4()},
		Draw{Primitive: uibatch.TriangleList, Start: 6, Count: 12},
	}
	expectedTypes := []CommandType{
		CmdResizeVertexBuffer,
		CmdUploadVertexData,
		CmdBeginFrame,
		CmdEndFrame,
		CmdSetShaders,
		CmdSetBlendMode,
		CmdSetScissor,
		CmdSetTexture,
		CmdSetShaderParameter,
		CmdDraw,
	}
	for i, cmd := range commands {
		if cmd.Type() != expectedTypes[i] {
			t.Errorf("command %d: Type() = %v, want %v", i, cmd.Type(), expectedTypes[i])
		}
	}
}

func TestCommandString(t *testing.T) {
	tests := []struct {
		cmd  Command
		want string
	}{
		{ResizeVertexBuffer{From: 10, To: 30}, "ResizeVertexBuffer 10 -> 30"},
		{UploadVertexData{Data: make([]float32, 3*uibatch.VertexStride)}, "UploadVertexData 3 vertices"},
		{BeginFrame{Width: 640, Height: 480}, "BeginFrame 640x480"},
		{SetShaders{Pair: uibatch.AlphaMapShaders}, "SetShaders Basic/BasicAlphaMap"},
		{SetBlendMode{Mode: uibatch.BlendAdd}, "SetBlendMode add"},
		{SetScissor{}, "SetScissor off"},
		{SetScissor{Enable: true, Rect: image.Rect(1, 2, 3, 4)}, "SetScissor (1,2)-(3,4)"},
		{SetTexture{Slot: 0, Ref: InvalidRef}, "SetTexture 0 none"},
		{SetTexture{Slot: 0, Ref: 2}, "SetTexture 0 #2"},
		{Draw{Primitive: uibatch.TriangleList, Start: 12, Count: 6}, "Draw trianglelist [12, 18)"},
	}
	for _, tt := range tests {
		if got := tt.cmd.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
