// Package quiz is the mindful-eating check-in: a small catalog of questions
// whose answers route either to eating or to a distraction.
package quiz

import (
	"errors"
	"math/rand/v2"
)

// Action is what an answer suggests doing.
type Action string

const (
	Eat      Action = "eat"
	Distract Action = "distract"
	Water    Action = "water"
)

// Outcome is the branch shown after an answer. Only Eat and Distract exist.
type Outcome = Action

type Option struct {
	Label  string
	Action Action
}

type Question struct {
	Text    string
	Options []Option
}

// Classify collapses an answer into one of the two outcome branches.
func Classify(a Action) Outcome {
	if a == Eat {
		return Eat
	}
	return Distract
}

// Activities are offered on the distract branch. Picking any of them ends
// the session.
var Activities = []string{"听首喜欢的歌", "喝杯温水", "出去晒晒太阳"}

const (
	DistractTitle = "转移一下注意力"
	DistractHint  = "给胃放个假。试着去做点别的事情，5分钟后再回来看看感觉？"
	EatTitle      = "那就好好吃一顿"
	EatHint       = "去【规划】里记录一下，我们只吃身体需要的量，好吗？"
	EatConfirm    = "好的，我去规划"
)

// Catalog is the built-in question set.
func Catalog() []Question {
	return []Question{
		{
			Text: "是真的饿了吗？还是因为嘴巴寂寞？",
			Options: []Option{
				{Label: "肚子咕咕叫，真饿了", Action: Eat},
				{Label: "单纯嘴馋，想嚼东西", Action: Distract},
			},
		},
		{
			Text: "是不是刚看到美味的食物广告？",
			Options: []Option{
				{Label: "是的，被诱惑了", Action: Distract},
				{Label: "没有，就是想吃", Action: Eat},
			},
		},
		{
			Text: "现在是不是感到有点无聊？",
			Options: []Option{
				{Label: "有点无所事事", Action: Distract},
				{Label: "很忙，但饿了", Action: Eat},
			},
		},
		{
			Text: "是不是觉得口渴了？",
			Options: []Option{
				{Label: "好像有点渴", Action: Water},
				{Label: "不渴，就是饿", Action: Eat},
			},
		},
	}
}

// Rand is the subset of *rand.Rand the engine uses.
type Rand interface {
	IntN(n int) int
}

var ErrEmptyCatalog = errors.New("quiz: empty catalog")

type Engine struct {
	questions []Question
	rng       Rand
}

// New returns an engine over questions. A nil rng uses the global source.
func New(questions []Question, rng Rand) (*Engine, error) {
	if len(questions) == 0 {
		return nil, ErrEmptyCatalog
	}
	if rng == nil {
		rng = globalRand{}
	}
	return &Engine{questions: questions, rng: rng}, nil
}

func (e *Engine) Len() int {
	return len(e.questions)
}

func (e *Engine) Question(i int) Question {
	return e.questions[i]
}

// Pick selects a question uniformly at random. When excluding is non-nil and
// the catalog has more than one question, the result never equals *excluding.
func (e *Engine) Pick(excluding *int) (int, Question) {
	n := len(e.questions)
	i := e.rng.IntN(n)
	for excluding != nil && n > 1 && i == *excluding {
		i = e.rng.IntN(n)
	}
	return i, e.questions[i]
}

type globalRand struct{}

func (globalRand) IntN(n int) int {
	return rand.IntN(n)
}
