package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jwebster45206/encounter-engine/internal/handlers"
	"github.com/jwebster45206/encounter-engine/pkg/encounter"
)

type commandKind int

const (
	cmdEncounter commandKind = iota
	cmdLoot
	cmdRoll
	cmdSeed
	cmdLocations
	cmdShow
	cmdSpawn
	cmdHelp
)

type command struct {
	kind      commandKind
	encounter handlers.CreateEncounterRequest
	treasure  handlers.TreasureRequest
	dice      string
	seed      *uint64 // nil with cmdSeed clears the sticky seed
	id        uuid.UUID
}

const helpText = `Commands:
• enc <location> <difficulty> <levels...> [loot|hoard]
    e.g. enc forest hard 3 3 4 5 hoard
• loot <level> [hoard] [wealth]
    e.g. loot 12 hoard 1.5
• roll <dice>          e.g. roll 3d6+2
• seed <n>|off         fix the seed for later requests
• locations            list location types and monsters
• show <id>            reload a stored encounter
• spawn                combat stats for the last encounter
• /help                this help
• Ctrl+Y               copy the last response JSON
• Ctrl+C               quit`

func parseCommand(input string) (command, error) {
	fields := strings.Fields(strings.TrimSpace(input))
	if len(fields) == 0 {
		return command{}, fmt.Errorf("empty command")
	}

	args := fields[1:]
	switch strings.ToLower(fields[0]) {
	case "enc", "encounter":
		return parseEncounter(args)
	case "loot", "treasure":
		return parseLoot(args)
	case "roll":
		if len(args) == 0 {
			return command{}, fmt.Errorf("usage: roll <dice>")
		}
		return command{kind: cmdRoll, dice: strings.Join(args, "")}, nil
	case "seed":
		if len(args) != 1 {
			return command{}, fmt.Errorf("usage: seed <n>|off")
		}
		if strings.EqualFold(args[0], "off") {
			return command{kind: cmdSeed}, nil
		}
		seed, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return command{}, fmt.Errorf("invalid seed %q", args[0])
		}
		return command{kind: cmdSeed, seed: &seed}, nil
	case "locations", "locs":
		return command{kind: cmdLocations}, nil
	case "show":
		if len(args) != 1 {
			return command{}, fmt.Errorf("usage: show <id>")
		}
		id, err := uuid.Parse(args[0])
		if err != nil {
			return command{}, fmt.Errorf("invalid encounter id %q", args[0])
		}
		return command{kind: cmdShow, id: id}, nil
	case "spawn":
		return command{kind: cmdSpawn}, nil
	case "/help", "help", "?":
		return command{kind: cmdHelp}, nil
	default:
		return command{}, fmt.Errorf("unknown command %q (try /help)", fields[0])
	}
}

func parseEncounter(args []string) (command, error) {
	if len(args) < 3 {
		return command{}, fmt.Errorf("usage: enc <location> <difficulty> <levels...> [loot|hoard]")
	}

	req := handlers.CreateEncounterRequest{
		LocationType: strings.ToLower(args[0]),
		Difficulty:   encounter.Difficulty(strings.ToLower(args[1])),
	}
	for _, arg := range args[2:] {
		switch strings.ToLower(arg) {
		case "loot":
			req.Treasure = &handlers.TreasureOptions{}
			continue
		case "hoard":
			req.Treasure = &handlers.TreasureOptions{IsHoard: true}
			continue
		}
		level, err := strconv.Atoi(arg)
		if err != nil {
			return command{}, fmt.Errorf("invalid level %q", arg)
		}
		req.Party = append(req.Party, encounter.Character{Level: level})
	}
	if len(req.Party) == 0 {
		return command{}, fmt.Errorf("at least one character level is required")
	}
	return command{kind: cmdEncounter, encounter: req}, nil
}

func parseLoot(args []string) (command, error) {
	if len(args) == 0 || len(args) > 3 {
		return command{}, fmt.Errorf("usage: loot <level> [hoard] [wealth]")
	}

	level, err := strconv.Atoi(args[0])
	if err != nil {
		return command{}, fmt.Errorf("invalid level %q", args[0])
	}
	req := handlers.TreasureRequest{EncounterLevel: level}

	for _, arg := range args[1:] {
		if strings.EqualFold(arg, "hoard") {
			req.IsHoard = true
			continue
		}
		wealth, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return command{}, fmt.Errorf("invalid wealth modifier %q", arg)
		}
		req.WealthModifier = &wealth
	}
	return command{kind: cmdLoot, treasure: req}, nil
}
