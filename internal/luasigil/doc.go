// Package luasigil implements fight sigils as Lua functions.
//
// A sigil script registers behaviour by name:
//
//	sigil("Scalebearer", function(ctx, holder, fight)
//	  if ctx.event == "draw" then fight:tip(1) end
//	end)
//
// The Handler dispatches every activation to the function registered for the
// sigil name. The card and fight handles passed to a function are only valid
// for the duration of that call.
package luasigil
