// Package viz renders population runs for the terminal.
//
// It provides:
//
//   - [Table]: the every-Nth-sample report with the saturation notice
//   - [Summary]: the closed-form analysis and interpretation notes
//   - [PlotPopulation] and [PlotRate]: asciigraph line charts
//   - [LiveModel]: a Bubble Tea view that pulls samples as it draws
//
// # Key Bindings (live view)
//
//	Space - Pause/Resume
//	+/-   - Faster/slower
//	R     - Restart from P0
//	Tab   - Select r or K
//	Up/Dn - Scale the selection by 5% and restart
//	Q     - Quit
package viz
