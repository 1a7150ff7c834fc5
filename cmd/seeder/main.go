package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/poiesic/talentscout"
	"github.com/poiesic/talentscout/core"
)

var dbPath = flag.String("db", "./talentscout_db", "path to BadgerDB database directory")

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

var creators = []*core.CreatorProfile{
	{Id: 1, Name: "Maya Lindqvist", Role: "Photographer", Location: "Stockholm", DayRate: 450,
		Subjects: []string{"weddings", "portraits"}, Styles: []string{"editorial", "natural light"}, DocumentsCount: 2},
	{Id: 2, Name: "Diego Fuentes", Role: "Photographer", Location: "Barcelona", DayRate: 380,
		Subjects: []string{"food", "product"}, Styles: []string{"studio", "moody"}},
	{Id: 3, Name: "Amara Okafor", Role: "Videographer", Location: "London", DayRate: 620,
		Subjects: []string{"weddings", "events"}, Styles: []string{"cinematic"}, DocumentsCount: 1},
	{Id: 4, Name: "Jonas Weber", Role: "Videographer", Location: "Berlin", DayRate: 540,
		Subjects: []string{"real estate", "drone"}, Styles: []string{"aerial"}},
	{Id: 5, Name: "Priya Raman", Role: "Illustrator", Location: "Mumbai", DayRate: 300,
		Subjects: []string{"children's books", "editorial"}, Styles: []string{"watercolor"}, DocumentsCount: 3},
	{Id: 6, Name: "Chloe Tran", Role: "Photographer", Location: "Melbourne", DayRate: 720,
		Subjects: []string{"fashion", "portraits"}, Styles: []string{"high key", "editorial"}, DocumentsCount: 1},
}

var projects = []*core.Project{
	{Id: 11, CreatorId: 1, Title: "Midsummer Weddings"},
	{Id: 12, CreatorId: 1, Title: "Winter Portrait Series"},
	{Id: 21, CreatorId: 2, Title: "Tapas Menu Shoot"},
	{Id: 31, CreatorId: 3, Title: "Lakeside Wedding Films"},
	{Id: 41, CreatorId: 4, Title: "Skyline Property Tours"},
	{Id: 51, CreatorId: 5, Title: "Storybook Commissions"},
	{Id: 61, CreatorId: 6, Title: "Runway Editorials"},
}

var items = []*core.ContentItem{
	{Modality: core.ModalityImage, ProjectId: 11, CreatorId: 1, Width: 4000, Height: 2667,
		Caption: "bride and groom dancing under string lights at dusk"},
	{Modality: core.ModalityImage, ProjectId: 11, CreatorId: 1, Width: 3600, Height: 2400,
		Caption: "golden hour couple portrait in a wheat field"},
	{Modality: core.ModalityImage, ProjectId: 12, CreatorId: 1, Width: 3000, Height: 4500,
		Caption: "moody window-lit portrait of a violinist"},
	{Modality: core.ModalityImage, ProjectId: 21, CreatorId: 2, Width: 4200, Height: 2800,
		Caption: "overhead shot of tapas plates on rustic wood"},
	{Modality: core.ModalityImage, ProjectId: 21, CreatorId: 2, Width: 4200, Height: 2800,
		Caption: "dark moody plating of grilled octopus with smoke"},
	{Modality: core.ModalityVideo, ProjectId: 31, CreatorId: 3, DurationSec: 184,
		Caption: "cinematic lakeside wedding highlight film at sunset"},
	{Modality: core.ModalityVideo, ProjectId: 31, CreatorId: 3, DurationSec: 46,
		Caption: "slow motion confetti exit with handheld gimbal"},
	{Modality: core.ModalityVideo, ProjectId: 41, CreatorId: 4, DurationSec: 95,
		Caption: "aerial drone flyover of a penthouse terrace at dawn"},
	{Modality: core.ModalityImage, ProjectId: 51, CreatorId: 5, Width: 2400, Height: 3000,
		Caption: "watercolor illustration of a fox reading under a tree"},
	{Modality: core.ModalityDocument, ProjectId: 51, CreatorId: 5,
		Caption: "illustrated children's book sample spread with rate card"},
	{Modality: core.ModalityImage, ProjectId: 61, CreatorId: 6, Width: 3840, Height: 5760,
		Caption: "high key fashion editorial with flowing red fabric"},
	{Modality: core.ModalityVideo, ProjectId: 61, CreatorId: 6, DurationSec: 31,
		Caption: "backstage runway preparation timelapse"},
}

func main() {
	db, err := talentscout.NewDatabase(*dbPath)
	if err != nil {
		panic(err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := db.Seed(ctx, creators, projects, items); err != nil {
		panic(err)
	}

	slog.Info("seeded demo corpus",
		"creators", len(creators), "projects", len(projects), "items", len(items))
}
