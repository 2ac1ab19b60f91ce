// Package xtalcheck checks the clocks of a board against the catalog of
// known crystals.
//
// A board is described by named clocks, each derived from a crystal by an
// optional multiplier and divisor. The clocks come from Config.Clocks, from
// a TOML clock file, or both. Every check validates the crystal of each clock
// and produces a Report.
//
// # Basic Usage
//
//	r, err := xtalcheck.New(xtalcheck.Config{ClockFile: "board.toml"})
//	if err != nil {
//	    return err
//	}
//	report, err := r.Check(ctx)
//	if err != nil {
//	    return err
//	}
//	if !report.OK() {
//	    report.WriteTo(os.Stderr)
//	}
//
// # Clock File
//
//	[[clock]]
//	name = "maincpu"
//	frequency = "14.318181MHz"
//	divisor = 4
//	context = "Z80 main CPU"
//
// frequency accepts a number in Hz or a string understood by
// xtal.ParseFrequency.
//
// # Watching
//
// Start runs one check in the background and initializes plugins. Plugins
// such as configwatcher call PluginConfig.Recheck when the clock file
// changes. Stop shuts plugins down in reverse order.
package xtalcheck
