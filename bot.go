package slither

import "fmt"

// botName returns the fixed per-room bot naming scheme: the first bot in
// a room is "AI", the second "AI2". Each room seats at most BotsPerRoom
// bots, so a short fixed scheme is all that's needed.
func botName(botIdx int) string {
	if botIdx == 0 {
		return "AI"
	}
	return fmt.Sprintf("AI%d", botIdx+1)
}

// botID builds the `bot_{room}_{idx}` seat id.
func botID(roomIdx, botIdx int) string {
	return fmt.Sprintf("bot_%d_%d", roomIdx, botIdx)
}

// decideBotMove runs the room's shared policy against one bot's current
// observation and returns its next-tick direction. If no policy has been
// installed on the room (e.g. a deployment that never loaded weights and
// chose not to run the deterministic default either), the bot simply holds
// its current heading.
func (r *Room) decideBotMove(p *Player) Cell {
	if r.policy == nil || !p.Alive {
		return p.Direction
	}
	features := BuildFeatures(FeatureContext{
		Head:      p.Head(),
		Direction: p.Direction,
		Occupied:  r.occupied,
		Food:      r.food,
		W:         MapWidth,
		H:         MapHeight,
	})
	action := r.policy.Decide(features)
	return turn(p.Direction, action)
}
