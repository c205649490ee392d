package bot

// Ожидаемые от пользователя действия
const (
	awaitingTask    = "new_task"
	awaitingExpense = "new_expense"
)

// UserState хранит текущее состояние диалога в чате
type UserState struct {
	AwaitingAction     string
	SelectedCategoryID string
}
