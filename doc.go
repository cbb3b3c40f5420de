// Package sheet is a gesture-to-state engine for bottom sheets ("drawers")
// in [Ebitengine] programs.
//
// A [Sheet] turns vertical pointer gestures into snap point selection and
// open/close decisions, runs the six-phase enter/exit transition, coordinates
// stacked (nested) sheets, and scales the page behind it back while open. It
// does not draw anything: hosts read [Sheet.Frame] and [Sheet.Panel] each tick
// and render the panel however they like.
//
// # Quick start
//
//	cfg := sheet.DefaultConfig()
//	cfg.SnapPoints = []sheet.SnapPoint{sheet.Fraction(0.4), sheet.Fraction(1)}
//	s := sheet.New(cfg)
//	s.SetViewport(640, 960)
//	s.SetPanelSize(800)
//
//	in := sheet.NewInput()
//	s.Attach(in)
//	s.Open()
//
// Then, from the game's Update:
//
//	in.Update()
//	s.Tick()
//
// and from Draw, translate the panel by s.Frame().Offset.
//
// # Coordinates
//
// Offsets are measured from the panel's fully open position and grow
// downward. Snap point 0 is always the closed position, where the offset
// equals the panel height. A drag's distance is the press Y minus the current
// Y, so it is positive while the pointer moves up, towards open.
//
// # Time
//
// A sheet has no clock of its own. [Sheet.Update] advances its [Scheduler],
// which fires deferred transition steps, and steps the panel animations.
// Steps scheduled with zero delay run on the next Update.
//
// # Scrollable content
//
// Describe the panel's content as a tree of [Region] values below
// [Sheet.Root]. A drag that starts on scrolled content, or that moves up over
// content which can still scroll, is left to the content instead of moving
// the panel.
//
// # Host control
//
// Setting [Config.Open] or [Config.ActiveSnapPoint] hands that piece of state
// to the host for the sheet's lifetime. The sheet then reports what it wants
// through the matching callback and waits for [Sheet.SetOpen] or
// [Sheet.SetActiveSnapPoint].
//
// # Testing
//
// [Input] accepts synthetic events (InjectPress, InjectMove, InjectRelease,
// InjectDrag) and [ScriptRunner] replays JSON gesture scripts with
// expectations against a sheet, so gesture behaviour can be tested headless.
//
// [Ebitengine]: https://ebitengine.org
package sheet
