package model

type FeedStatus string

const (
	FeedIdle      FeedStatus = "idle"
	FeedLoading   FeedStatus = "loading"
	FeedPopulated FeedStatus = "populated"
	FeedEmpty     FeedStatus = "empty"
)

// FeedState is the immutable value handed to the rendering layer
// Loading stays true until the single fetch settles, then flips to false for good
type FeedState struct {
	Status  FeedStatus       `json:"status"`
	Loading bool             `json:"loading"`
	Items   []DisplayProject `json:"items"`
}

func IdleState() FeedState {
	return FeedState{Status: FeedIdle, Loading: true, Items: []DisplayProject{}}
}

func LoadingState() FeedState {
	return FeedState{Status: FeedLoading, Loading: true, Items: []DisplayProject{}}
}

// SettledState builds the terminal state for the given projection
func SettledState(items []DisplayProject) FeedState {
	if len(items) == 0 {
		return FeedState{Status: FeedEmpty, Loading: false, Items: []DisplayProject{}}
	}

	return FeedState{Status: FeedPopulated, Loading: false, Items: items}
}

func (s FeedState) Terminal() bool {
	return s.Status == FeedPopulated || s.Status == FeedEmpty
}
