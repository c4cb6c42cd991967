// Package motion animates elements of a 2D scene for [Ebitengine] programs.
//
// It provides two kinds of moving parts: a [Controller], which moves one
// element along a Bezier path when a hotkey or scene activation triggers it,
// and a [Transition], which morphs one scene into another by moving the
// elements the two scenes share and collapsing or growing the rest.
//
// # Quick start
//
// Build a scene, describe the motion in [Settings], and tick the controller
// from the game loop:
//
//	logo := motion.NewNode("logo", 120, 40)
//	scene := motion.NewScene("main")
//	scene.AddItem(logo)
//
//	s := motion.NewSettings()
//	motion.Defaults(motion.KindRoundTrip, s)
//	s.SetString(motion.KeySource, "logo")
//	s.SetInt(motion.KeyDstX, 400)
//	s.SetInt(motion.KeyDstY, 200)
//
//	triggers := motion.NewTriggers()
//	ctrl := motion.NewController("slide", scene, s, triggers)
//
//	func (g *Game) Update() error {
//		g.triggers.Poll()
//		g.ctrl.Tick(1.0 / float64(ebiten.TPS()))
//		return nil
//	}
//
// # Controllers
//
// A controller's [Behavior] decides how it is triggered. [BehaviorOneWay]
// registers a forward hotkey and replays from the original start on every
// trigger. [BehaviorRoundTrip] adds a backward hotkey that returns the
// element to where it started, exactly. [BehaviorSceneSwitch] runs forward
// when its scene becomes current (see [Triggers.SetCurrentScene]) and snaps
// back when another scene takes over.
//
// The resting side and the captured start survive restarts: call
// [Controller.Save] before persisting settings through the store subpackage.
//
// # Transitions
//
// A [Transition] is driven by the host with a parameter t in [0, 1]. Call
// [Transition.Start], then [Transition.Render] once per frame. Elements
// found by name in both scenes follow a curved path bent by the bezier_x and
// bezier_y settings; the rest shrink into or grow out of their own centre.
// [EbitenRenderer] draws the frames onto an ebiten image.
//
// # Configuration and logging
//
// [LoadConfig] reads host defaults and the store location from a YAML, JSON
// or TOML file with [viper]. Logging goes through [zerolog]; the package
// logger is silent until [SetLogger] is called.
//
// # ECS integration
//
// The motion/ecs submodule forwards controller and transition [Event]s to
// a [Donburi] world.
//
// [Ebitengine]: https://ebitengine.org
// [viper]: https://github.com/spf13/viper
// [zerolog]: https://github.com/rs/zerolog
// [Donburi]: https://github.com/yohamta/donburi
package motion
