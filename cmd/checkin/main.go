// Package main is the command-line client for the Wayfarer API.
// It drives the same capture, deletion, and timeline controllers a graphical
// frontend would, so the full check-in flow can be exercised from a terminal:
//
//	checkin search "tiong bahru"          search, pick a result, save
//	checkin locate -lat 1.2841 -lon 103.832   reverse-geocode and save
//	checkin trips                          list derived trips
//	checkin timeline trip-0               day-grouped view of one trip
//	checkin delete <id> [-name <name>]    delete with confirmation
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/eykoh/wayfarer/internal/apiclient"
	"github.com/eykoh/wayfarer/internal/capture"
	"github.com/eykoh/wayfarer/internal/deletion"
	"github.com/eykoh/wayfarer/internal/domain"
	"github.com/eykoh/wayfarer/internal/timeline"
)

func main() {
	_ = godotenv.Load()

	baseURL := os.Getenv("WAYFARER_API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	app := &cli{
		api: apiclient.New(baseURL),
		in:  bufio.NewReader(os.Stdin),
		loc: time.Local,
	}

	ctx := context.Background()
	var err error
	switch cmd, args := os.Args[1], os.Args[2:]; cmd {
	case "search":
		err = app.search(ctx, args)
	case "locate":
		err = app.locate(ctx, args)
	case "trips":
		err = app.trips(ctx)
	case "timeline":
		err = app.timeline(ctx, args)
	case "delete":
		err = app.delete(ctx, args)
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: checkin <search|locate|trips|timeline|delete> [args]")
}

// cli bundles the collaborators every subcommand needs.
type cli struct {
	api *apiclient.Client
	in  *bufio.Reader
	loc *time.Location
}

// search runs the full manual capture flow: query, pick, optionally adjust
// the date, save.
func (c *cli) search(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: checkin search <query>")
	}
	query := strings.Join(args, " ")

	engine := capture.NewSearchEngine(c.api)
	results, err := engine.Search(ctx, query)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Println("no results")
		return nil
	}

	sel := capture.NewSelection()
	sel.SetResults(results)
	for i, cand := range results {
		fmt.Printf("%2d. %s\n    %s\n", i+1, cand.Name, cand.Formatted)
	}

	pick, err := c.prompt(fmt.Sprintf("pick [1-%d]: ", len(results)))
	if err != nil {
		return err
	}
	idx, err := strconv.Atoi(pick)
	if err != nil || idx < 1 || idx > len(results) {
		return fmt.Errorf("%w: invalid pick", domain.ErrValidation)
	}
	sel.Select(results[idx-1])

	return c.save(ctx, sel)
}

// locate runs the quick capture flow from explicit coordinates. A GPS-less
// terminal has no position source, so the coordinates come from flags.
func (c *cli) locate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("locate", flag.ContinueOnError)
	lat := fs.Float64("lat", 0, "latitude")
	lon := fs.Float64("lon", 0, "longitude")
	if err := fs.Parse(args); err != nil {
		return err
	}

	sel := capture.NewSelection()
	resolver := capture.NewResolver(fixedPosition{lat: *lat, lon: *lon}, c.api, sel)

	candidate, _, err := resolver.Locate(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("located: %s (%s)\n", candidate.Name, candidate.Formatted)

	return c.save(ctx, sel)
}

// save prompts for an optional date and time, then persists the selection.
func (c *cli) save(ctx context.Context, sel *capture.Selection) error {
	form := capture.NewForm(sel, c.api, c.loc)

	dateStr, err := c.prompt("date [YYYY-MM-DD, empty for today]: ")
	if err != nil {
		return err
	}
	if dateStr != "" {
		parsed, err := time.ParseInLocation("2006-01-02", dateStr, c.loc)
		if err != nil {
			return fmt.Errorf("%w: invalid date", domain.ErrValidation)
		}
		form.SetDate(domain.DateOf(parsed))
	}

	timeStr, err := c.prompt("time [HH:MM, empty for midnight]: ")
	if err != nil {
		return err
	}
	if timeStr != "" {
		parsed, err := time.Parse("15:04", timeStr)
		if err != nil {
			return fmt.Errorf("%w: invalid time", domain.ErrValidation)
		}
		form.SetTime(domain.TimeOfDay{Hour: parsed.Hour(), Minute: parsed.Minute()})
	}

	saved, err := form.Save(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("checked in at %s (%s)\n", saved.LocationName, saved.ID)
	return nil
}

// trips prints all derived trips, most recently ended first.
func (c *cli) trips(ctx context.Context) error {
	trips, err := c.api.ListTrips(ctx)
	if err != nil {
		return err
	}
	if len(trips) == 0 {
		fmt.Println("no trips yet")
		return nil
	}
	for _, trip := range trips {
		fmt.Printf("%-8s %-30s %s (%d check-ins)\n",
			trip.ID, trip.Display, trip.MonthLabel, len(trip.CheckIns))
	}
	return nil
}

// timeline prints one trip's check-ins grouped by day, most recent day first.
func (c *cli) timeline(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: checkin timeline <trip-id>")
	}
	checkIns, err := c.api.TripCheckIns(ctx, args[0])
	if err != nil {
		return err
	}

	for _, group := range timeline.Groups(checkIns, c.loc) {
		fmt.Println(group.Label)
		for _, entry := range group.Entries {
			fmt.Printf("  %s  %s\n", entry.VisitedAt.In(c.loc).Format("15:04"), entry.LocationName)
		}
	}
	return nil
}

// delete arms and confirms a single deletion through the controller.
func (c *cli) delete(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("delete", flag.ContinueOnError)
	name := fs.String("name", "", "location name, required to confirm")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: checkin delete <id> [-name <name>]")
	}

	ctrl := deletion.NewController(c.api,
		deletion.WithNameConfirmation(),
		deletion.WithDeletedCallback(func(id string) { fmt.Println("deleted", id) }),
	)
	ctrl.Request(deletion.Target{ID: fs.Arg(0), Name: *name})

	typed, err := c.prompt(fmt.Sprintf("type %q to confirm: ", *name))
	if err != nil {
		return err
	}
	ctrl.TypeName(typed)
	return ctrl.Confirm(ctx)
}

// prompt reads one trimmed line from stdin.
func (c *cli) prompt(label string) (string, error) {
	fmt.Print(label)
	line, err := c.in.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// fixedPosition is a PositionSource whose answer is fixed at construction.
type fixedPosition struct {
	lat, lon float64
}

func (p fixedPosition) CurrentPosition(context.Context) (float64, float64, error) {
	return p.lat, p.lon, nil
}
