package game

// Rules holds the scoring constants of the grid game.
type Rules struct {
	TimePenalty float64 // Paid by every move of the controlled agent
	FoodScore   float64
	WinBonus    float64
	LosePenalty float64
	GhostScore  float64 // Earned for catching a scared ghost
	ScaredTime  int     // Ghost moves a capsule keeps ghosts scared for
}

func NewStandardRules() *Rules {
	return &Rules{
		TimePenalty: 1,
		FoodScore:   10,
		WinBonus:    500,
		LosePenalty: 500,
		GhostScore:  200,
		ScaredTime:  40,
	}
}
