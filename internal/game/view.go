package game

import "wordgame-service/domain"

// RoomView is a room as clients see it: answers hidden and, in easy battle
// rooms, a hint for the current prompt.
type RoomView struct {
	Room *domain.Room `json:"room"`
	Hint string       `json:"hint,omitempty"`
}

func ViewOf(room *domain.Room) RoomView {
	view := RoomView{Room: room.Public()}
	if room.Status == domain.StatusPlaying && room.Battle != nil && room.Battle.Difficulty == domain.DifficultyEasy {
		if prompt, ok := room.Battle.Current(); ok {
			view.Hint = Hint(prompt)
		}
	}
	return view
}
