package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"

	"daynight-engine/cycle"
	"daynight-engine/daynight"
	"daynight-engine/editor"
	dnio "daynight-engine/io"
	"daynight-engine/profile"
	"daynight-engine/scene"
)

var errUsage = errors.New("usage: dayctl validate|table|simulate|solar [flags] PROFILE")

func dispatch(args []string, out io.Writer, logger *slog.Logger) error {
	if len(args) == 0 {
		return errUsage
	}
	switch args[0] {
	case "validate":
		return runValidate(args[1:], out)
	case "table":
		return runTable(args[1:], out)
	case "simulate":
		return runSimulate(args[1:], out, logger)
	case "solar":
		return runSolar(args[1:], out)
	}
	return fmt.Errorf("unknown command %q: %w", args[0], errUsage)
}

func profileArg(fs *flag.FlagSet) (string, error) {
	if fs.NArg() != 1 {
		return "", fmt.Errorf("%s needs exactly one profile: %w", fs.Name(), errUsage)
	}
	return fs.Arg(0), nil
}

func parseAndLoad(fs *flag.FlagSet, args []string) (string, *profile.Profile, error) {
	if err := fs.Parse(args); err != nil {
		return "", nil, err
	}
	path, err := profileArg(fs)
	if err != nil {
		return "", nil, err
	}
	p, err := dnio.LoadProfile(path)
	if err != nil {
		return "", nil, err
	}
	return path, p, nil
}

// cycleDuration is the real time one full cycle takes, or 0 for a stopped
// clock.
func cycleDuration(p *profile.Profile) time.Duration {
	clock := cycle.New(cycle.ConfigFor(p, 0), nil)
	if clock.Rate() <= 0 {
		return 0
	}
	seconds := clock.CycleHours() * 3600 / clock.Rate()
	return time.Duration(seconds * float64(time.Second))
}

func runValidate(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	fs.SetOutput(out)
	path, p, err := parseAndLoad(fs, args)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%s: ok\n", path)
	fmt.Fprintf(out, "  %s keyframes, %dh cycle, sky %s\n", humanize.Comma(int64(len(p.Keyframes))), p.CycleHours, p.SkyMode)

	d := cycleDuration(p)
	now := time.Now()
	fmt.Fprintf(out, "  one cycle lasts %s of real time (%s in-game seconds per second)\n",
		strings.TrimSpace(humanize.RelTime(now, now.Add(d), "", "")), humanize.Ftoa(cycle.New(cycle.ConfigFor(p, 0), nil).Rate()))
	if len(p.Keyframes) == 0 {
		fmt.Fprintln(out, "  warning: no keyframes, the cycle cannot run")
	}
	return nil
}

func runTable(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("table", flag.ContinueOnError)
	fs.SetOutput(out)
	_, p, err := parseAndLoad(fs, args)
	if err != nil {
		return err
	}
	writeTable(out, p)
	return nil
}

// writeTable lists keyframes in resolution order with the span each owns
// and the perceptual colour change from the previous keyframe.
func writeTable(out io.Writer, p *profile.Profile) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tNAME\tTIME\tOWNS\tCOLOUR\tINTENSITY\tROTATION\tΔE")

	n := len(p.Keyframes)
	for i := range p.Keyframes {
		k := &p.Keyframes[i]
		prev := &p.Keyframes[(i+n-1)%n]
		end := float64(p.CycleHours)
		if i+1 < n {
			end = p.Keyframes[i+1].Time
		}
		owns := fmt.Sprintf("%s-%s", editor.TimeLabel(k.Time), editor.TimeLabel(end))
		if i == n-1 && n > 0 && p.Keyframes[0].Time > 0 {
			owns += fmt.Sprintf(", 0:00-%s", editor.TimeLabel(p.Keyframes[0].Time))
		}
		delta := dnio.ColorToColorful(prev.LightColor).DistanceCIEDE2000(dnio.ColorToColorful(k.LightColor))
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t(%g, %g, %g)\t%.3f\n",
			i, k.Name, editor.TimeLabel(k.Time), owns, dnio.FormatColor(k.LightColor),
			humanize.FtoaWithDigits(float64(k.LightIntensity), 3),
			k.LightRotation.X, k.LightRotation.Y, k.LightRotation.Z, delta)
	}
	tw.Flush()
}

func runSimulate(args []string, out io.Writer, logger *slog.Logger) error {
	fs := flag.NewFlagSet("simulate", flag.ContinueOnError)
	fs.SetOutput(out)
	start := fs.Float64("start", 0, "start time of day in hours")
	duration := fs.Float64("duration", 60, "real seconds to simulate")
	step := fs.Float64("step", 1.0/60, "frame delta in seconds")
	every := fs.Int("every", 60, "print every N frames")
	_, p, err := parseAndLoad(fs, args)
	if err != nil {
		return err
	}
	if *step <= 0 || *every <= 0 {
		return fmt.Errorf("step and every must be positive: %w", errUsage)
	}
	return simulate(out, p, *start, *duration, *step, *every, logger)
}

func simulate(out io.Writer, p *profile.Profile, start, duration, step float64, every int, logger *slog.Logger) error {
	s := scene.NewScene()
	ctrl := daynight.New(daynight.Options{
		Profile:   p,
		StartTime: start,
		Light:     s.Sun,
		Sky:       s.Sky,
		Anchor:    s.Anchor,
		Logger:    logger,
	})

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FRAME\tELAPSED\tTIME\tKEYFRAME\tLIGHT\tINTENSITY\tEXPOSURE\tCONVERGED")
	frames := int(duration / step)
	for f := 0; f <= frames; f++ {
		elapsed := float64(f) * step
		if err := ctrl.AdvanceAndApply(elapsed, step); err != nil {
			tw.Flush()
			return err
		}
		if f%every != 0 && f != frames {
			continue
		}
		fmt.Fprintf(tw, "%s\t%.2fs\t%s\t%s\t%s\t%.3f\t%.3f\t%v\n",
			humanize.Comma(int64(f)), elapsed, ctrl.FormattedTime(), ctrl.ActiveKeyframe().Name,
			dnio.FormatColor(s.Sun.Color()), s.Sun.Intensity(), s.Sky.Float(scene.SkyExposure), ctrl.Converged())
	}
	return tw.Flush()
}

func runSolar(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("solar", flag.ContinueOnError)
	fs.SetOutput(out)
	lat := fs.Float64("lat", 0, "latitude in degrees")
	lng := fs.Float64("lng", 0, "longitude in degrees")
	date := fs.String("date", "", "date as YYYY-MM-DD (default today)")
	dayName := fs.String("day", "Day", "keyframe placed at sunrise")
	nightName := fs.String("night", "Night", "keyframe placed at sunset")
	dest := fs.String("out", "", "write the updated profile here (default: print only)")
	_, p, err := parseAndLoad(fs, args)
	if err != nil {
		return err
	}

	when := time.Now()
	if *date != "" {
		if when, err = time.Parse(time.DateOnly, *date); err != nil {
			return fmt.Errorf("failed to parse date: %w", err)
		}
	}
	rise, set, err := profile.SolarTimes(*lat, *lng, when)
	if err != nil {
		return err
	}
	if err := p.PlaceSolar(*dayName, *nightName, *lat, *lng, when); err != nil {
		return err
	}

	fmt.Fprintf(out, "sunrise %s, sunset %s (%s, %s)\n", editor.TimeLabel(rise), editor.TimeLabel(set), when.Location(), when.Format(time.DateOnly))
	writeTable(out, p)
	if *dest != "" {
		if err := dnio.SaveProfile(*dest, p); err != nil {
			return err
		}
		fmt.Fprintf(out, "wrote %s\n", *dest)
	}
	return nil
}
