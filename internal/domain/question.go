package domain

import "context"

const DefaultQuestionSlug = "two-sum"

type TopicTag struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Question is the problem-catalog projection returned to clients.
type Question struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Slug       string     `json:"slug"`
	Content    string     `json:"content"`
	Difficulty string     `json:"difficulty"`
	Likes      int        `json:"likes"`
	Dislikes   int        `json:"dislikes"`
	TopicTags  []TopicTag `json:"topicTags"`
}

// QuestionCatalog is the external problem-catalog API.
type QuestionCatalog interface {
	Question(ctx context.Context, slug string) (*Question, error)
}

type QuestionUsecase interface {
	GetQuestion(ctx context.Context, slug string) (*Question, error)
}
