package asset

// DefaultTimeline is the presentation transition table in TOML
// Scene states exit when their scene reports finished; timed states exit when their duration elapses
const DefaultTimeline = `

# === Presentation timeline ===
initial = "Login"

# --- SCENE STATES ---

[states.Login]
kind = "scene"
next = "Terminal"
on_enter = ["StartLoop"]

[states.Terminal]
kind = "scene"
next = "Collapse"
exit_cue = 6

[states.Locate]
kind = "scene"
next = "ResetCollapse"
min_dwell = 3.0
exit_cue = 6

# --- FORWARD TRANSITION ---

[states.Collapse]
kind = "timed"
duration = 0.75
easing = "in_quad"
effect = "overlay"
next = "Blackscreen"

[states.Blackscreen]
kind = "timed"
duration = 1.0
easing = "in_quad"
effect = "blackout"
next = "Rebuild"
exit_cue = 7

[states.Rebuild]
kind = "timed"
duration = 1.25
easing = "out_quad"
invert = true
effect = "overlay"
next = "Locate"

# --- RESET TRANSITION ---

[states.ResetCollapse]
kind = "timed"
duration = 0.75
easing = "in_quad"
effect = "overlay"
next = "ResetBlackscreen"

[states.ResetBlackscreen]
kind = "timed"
duration = 1.0
easing = "in_quad"
effect = "blackout"
next = "ResetRebuild"
exit_cue = 7

[states.ResetRebuild]
kind = "timed"
duration = 1.25
easing = "out_quad"
invert = true
effect = "overlay"
next = "Login"
on_exit = ["ResetScenes", "StopLoop"]
`
