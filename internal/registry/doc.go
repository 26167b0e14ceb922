// Package registry implements the one-shot hand-off between the side
// that publishes implementor data and the renderer that displays it.
//
// # Purpose
//
// A browsing session has two independent participants whose relative
// startup order is not controlled here: a loader that produces the
// complete ModuleImplementorsMap, and a renderer that wants to paint
// it. The Registry lets either side arrive first:
//
//   - renderer-first: InstallHook arms the hook; the later Register
//     call invokes it synchronously with the map.
//   - data-first: Register buffers the map in the pending slot; the
//     later InstallHook call flushes it synchronously and clears the
//     slot.
//
// Either way the hook observes the full, unmodified map exactly once,
// and the data can never be dropped.
//
// # Scope
//
// The registry holds no data beyond one session: construct it with New
// at session start and let it go out of scope at session end. It never
// parses source, renders output, or touches disk — those concerns live
// in internal/loader and the renderer packages.
//
// # Policies
//
// Registering twice before a hook is installed overwrites the pending
// slot (last write wins). Installing a second hook is a programming
// error and fails with ErrHookInstalled; the hand-off is designed to
// be one-shot. Malformed maps are rejected before any state change.
package registry
