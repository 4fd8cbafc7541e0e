package main

import (
	"context"
	"fmt"
	"math"

	advisorrpc "paymind/internal/modules/advisor/adapter/out/rpc"

	"github.com/hashicorp/go-plugin"
)

const (
	bedtimeWeeklyLimit = 21.0
	bedtimeHoursPerDay = 1.0
)

type server struct{}

func (s *server) GetMetadata(_ context.Context, _ *advisorrpc.Empty) (*advisorrpc.Metadata, error) {
	return &advisorrpc.Metadata{
		Name:        "reference",
		Version:     "1.0.0",
		Description: "Suggests a phone-free hour before bed for heavy weekly usage",
	}, nil
}

func (s *server) Advise(_ context.Context, in *advisorrpc.AdviseRequest) (*advisorrpc.AdviseResponse, error) {
	if in.WeeklyHours <= bedtimeWeeklyLimit {
		return &advisorrpc.AdviseResponse{Suggestions: []advisorrpc.Suggestion{}}, nil
	}
	over := in.WeeklyHours - bedtimeWeeklyLimit
	return &advisorrpc.AdviseResponse{Suggestions: []advisorrpc.Suggestion{{
		ID:              "bedtime",
		Title:           "Phone-free last hour",
		Description:     fmt.Sprintf("You spent %.1f hours on screens this week, %.1f over three a day. Park the phone an hour before bed.", in.WeeklyHours, over),
		CurrentCost:     round2(over * in.ReferenceRate),
		PotentialSaving: round2(7 * bedtimeHoursPerDay * in.ReferenceRate),
		Difficulty:      "easy",
	}}}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func main() {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: advisorrpc.HandshakeConfig,
		Plugins:         advisorrpc.PluginMap(&server{}),
		GRPCServer:      plugin.DefaultGRPCServer,
	})
}
