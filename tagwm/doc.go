/*
Tagwm is a dynamic tiling window manager for X11. Every window carries a set
of tags, and every monitor shows the windows whose tags it has selected.
Windows are arranged by the monitor's layout: a master area and a stack
(tile), one window at a time (monocle), or not at all (float).

# INSTALLATION

To install tagwm:
 1. Install Go (as per https://go.dev/doc/install or get it from your
    distribution).
 2. Run "go install github.com/nigeltao/tagwm/tagwm@latest".

Tagwm is designed to run from an Xsession session. Add this line to the end of
your ~/.xsession file:

	exec /path/to/your/tagwm

where the path is wherever "go install" wrote to. Run "go help install" for
more information.

# USAGE

A bar at the top of each monitor shows the tags, the layout symbol, the title
of the focused window and a status text. The status text is the root window's
name, so a script can update it with "xsetroot -name". Clicking a tag views
it, right clicking adds it to the view, and the same clicks with the Windows
key held tag the focused window instead.

All default keyboard shortcuts involve holding down the Windows key (Mod4).
Mod4 and a number key views that tag; adding Shift moves the focused window
there. Mod4 and the 'J' or 'K' key cycles the focus through the visible
windows, Mod4 and Enter swaps the focused window with the master, and Mod4
and 'H' or 'L' resizes the master area. Mod4 and 'T', 'F' or 'M' selects the
tile, float or monocle layout, and Mod4 and Space goes back to the previous
one. Mod4 and Shift and 'C' closes the focused window. Mod4 and Shift and 'Q'
quits.

Dragging a window with Mod4 and the left mouse button moves it, and the right
mouse button resizes it. Either makes a tiled window float once the pointer
has moved far enough. Mod4 and the grave key shows or hides the scratchpad
terminal, which is started on first use.

Mod4 and Shift and 'M' marks or unmarks the focused window, and Mod4 and
Control and 'M' marks every visible window. While any window is marked,
closing, tagging, sending to another monitor and toggling floating act on the
marked windows instead of the focused one, and clear the marks.

Programs that ask to be fullscreen cover their monitor. Mod4 and Shift and
'Y' makes such a window "fake" fullscreen instead: it believes it is
fullscreen but stays in the layout.

# CUSTOMIZATION

The configuration is read from $XDG_CONFIG_HOME/tagwm/config.yaml, or the
path given by --config or $TAGWM_CONFIG. Run "tagwm dump-config --defaults"
for a starting point and "tagwm check-config" to validate an edited file.
Saving the file, sending SIGHUP, or Mod4 and Shift and 'R' reloads it
without restarting. A document that fails to load is reported and the
previous configuration stays in effect. The number of tags cannot change
while running.

# DEVELOPMENT

When working on tagwm, it can be run in a nested X server such as Xephyr:

	Xephyr :9 2>/dev/null &
	go run ./tagwm --display :9 --log-level debug
*/
package main
