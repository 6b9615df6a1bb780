// Package widget is a small retained widget toolkit that drives a
// uibatch.UI.
//
// A Toolkit owns a tree of nodes under a root Panel. Every frame the UI
// calls the Toolkit hooks in order: AdvanceAnimations, ProcessStates,
// Process, BeginPaint, Paint and EndPaint. Paint walks the tree and emits
// one primitive per widget quad or text run, so neighboring widgets that
// share a texture, blend mode and clip merge into a single draw call.
//
// Widgets:
//   - Panel: a solid rectangle that may clip its children
//   - Button: a skinned or solid rectangle with a centered caption
//   - Label: a text run
//   - TextField: an editable single-line text run with a caret
//
// Trees are built in code with Toolkit.Add or loaded from YAML layout
// files (see LoadLayout). Text is rasterized into a shared glyph atlas and
// uploaded through the uibatch.TextureCreator the UI hands to the
// toolkit.
package widget
