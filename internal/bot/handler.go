package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/ivanoskov/tracker_bot/internal/model"
	"github.com/ivanoskov/tracker_bot/internal/service"
)

const helpText = "Я веду ваш список дел и учёт расходов. Всё сохраняется между сессиями.\n\n" +
	"/tasks — список задач\n" +
	"/task <текст> — добавить задачу\n" +
	"/expenses — список расходов\n" +
	"/expense [<сумма> <категория> <описание>] — добавить расход\n" +
	"/report [day|week|month|year] — отчёт\n" +
	"/chart [day|week|month|year] — графики\n\n" +
	"Выберите действие:"

func (b *Bot) handleCommand(ctx context.Context, sess *service.Session, message *tgbotapi.Message) error {
	chatID := message.Chat.ID
	args := strings.TrimSpace(message.CommandArguments())

	// новая команда отменяет незавершенный диалог
	delete(b.states, chatID)

	switch message.Command() {
	case "start", "help":
		b.handleStart(chatID)
	case "tasks":
		b.sendTasks(chatID, sess)
	case "task":
		b.handleAddTask(ctx, sess, chatID, args)
	case "expenses":
		b.sendExpenses(chatID, sess)
	case "expense":
		b.handleAddExpense(ctx, sess, chatID, args)
	case "report":
		b.handleReport(sess, chatID, args)
	case "chart":
		b.handleChart(sess, chatID, args)
	default:
		b.sendText(chatID, "Неизвестная команда. /help — список команд")
	}

	return nil
}

func (b *Bot) handleStart(chatID int64) {
	msg := tgbotapi.NewMessage(chatID, "Добро пожаловать! 📝💰\n\n"+helpText)
	msg.ReplyMarkup = b.getMainKeyboard()
	b.send(msg)
}

func (b *Bot) handleAddTask(ctx context.Context, sess *service.Session, chatID int64, description string) {
	if description == "" {
		b.states[chatID] = &UserState{AwaitingAction: awaitingTask}
		b.sendText(chatID, "Введите описание задачи:")
		return
	}

	b.addTask(ctx, sess, chatID, description)
}

func (b *Bot) addTask(ctx context.Context, sess *service.Session, chatID int64, description string) {
	_, err := sess.Todos.Add(ctx, description)
	if b.checkMutation(chatID, err) {
		return
	}
	b.sendTasks(chatID, sess)
}

func (b *Bot) handleAddExpense(ctx context.Context, sess *service.Session, chatID int64, args string) {
	if args == "" {
		b.states[chatID] = &UserState{AwaitingAction: awaitingExpense}
		msg := tgbotapi.NewMessage(chatID, "Выберите категорию расхода:")
		msg.ReplyMarkup = b.getCategoriesKeyboard(model.Categories())
		b.send(msg)
		return
	}

	// Быстрый ввод: <сумма> <категория> <описание>
	parts := strings.SplitN(args, " ", 3)
	if len(parts) != 3 {
		b.sendErrorMessage(chatID, "Неверный формат. Используйте: /expense <сумма> <категория> <описание>")
		return
	}

	amount, err := parseAmount(parts[0])
	if err != nil {
		b.sendErrorMessage(chatID, "Неверный формат суммы. Используйте число, например: 1000.50")
		return
	}

	b.addExpense(ctx, sess, chatID, parts[2], resolveCategory(parts[1]), amount)
}

func (b *Bot) addExpense(ctx context.Context, sess *service.Session, chatID int64, description, categoryID string, amount float64) {
	expense, err := sess.Expenses.AddExpense(ctx, description, categoryID, amount)
	if b.checkMutation(chatID, err) {
		return
	}

	b.logger.Info("expense saved", zap.Int64("chat_id", chatID), zap.String("id", expense.ID))
	msg := tgbotapi.NewMessage(chatID, fmt.Sprintf("Расход сохранён! ✅\n%s", expensesText(sess)))
	msg.ReplyMarkup = b.getMainKeyboard()
	b.send(msg)
}

func (b *Bot) handleReport(sess *service.Session, chatID int64, args string) {
	reportType, ok := service.ParseReportType(args)
	if !ok {
		b.sendErrorMessage(chatID, "Период должен быть одним из: day, week, month, year")
		return
	}

	report := sess.Expenses.GetReport(reportType, b.now())
	b.sendText(chatID, report.Text)
}

func (b *Bot) handleChart(sess *service.Session, chatID int64, args string) {
	reportType, ok := service.ParseReportType(args)
	if !ok {
		b.sendErrorMessage(chatID, "Период должен быть одним из: day, week, month, year")
		return
	}

	report := sess.Expenses.GetReport(reportType, b.now())
	renderers := []struct {
		name   string
		render func(*service.Report) ([]byte, error)
	}{
		{"categories.png", b.charts.GenerateCategoryAnalysis},
		{"daily.png", b.charts.GenerateDailyTrend},
		{"comparison.png", b.charts.GeneratePeriodComparison},
	}

	sent := 0
	for _, r := range renderers {
		png, err := r.render(report)
		if err != nil {
			b.logger.Error("failed to render chart", zap.String("chart", r.name), zap.Error(err))
			continue
		}
		if png == nil {
			continue
		}
		b.send(tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: r.name, Bytes: png}))
		sent++
	}

	if sent == 0 {
		b.sendText(chatID, "Нет данных для графиков за "+report.Period)
	}
}

func (b *Bot) handleCallback(ctx context.Context, sess *service.Session, callback *tgbotapi.CallbackQuery) error {
	chatID := callback.Message.Chat.ID
	messageID := callback.Message.MessageID

	switch data := callback.Data; {
	case strings.HasPrefix(data, callbackCategory):
		categoryID := strings.TrimPrefix(data, callbackCategory)
		category, ok := model.LookupCategory(categoryID)
		if !ok {
			b.sendErrorMessage(chatID, "Неизвестная категория")
			break
		}

		// Сохраняем выбранную категорию в состоянии чата
		b.states[chatID] = &UserState{
			AwaitingAction:     awaitingExpense,
			SelectedCategoryID: category.ID,
		}
		b.sendText(chatID, fmt.Sprintf("Категория: %s\nВведите сумму и описание в формате:\n1000 Покупка продуктов", category.Name))

	case strings.HasPrefix(data, callbackTaskToggle):
		err := sess.Todos.Toggle(ctx, strings.TrimPrefix(data, callbackTaskToggle))
		if !b.checkMutation(chatID, err) {
			b.editList(chatID, messageID, tasksText(sess), b.getTasksKeyboard(sess.Todos.Tasks()))
		}

	case strings.HasPrefix(data, callbackTaskDelete):
		err := sess.Todos.Remove(ctx, strings.TrimPrefix(data, callbackTaskDelete))
		if !b.checkMutation(chatID, err) {
			b.editList(chatID, messageID, tasksText(sess), b.getTasksKeyboard(sess.Todos.Tasks()))
		}

	case strings.HasPrefix(data, callbackExpenseRefund):
		err := sess.Expenses.ToggleReimbursed(ctx, strings.TrimPrefix(data, callbackExpenseRefund))
		if !b.checkMutation(chatID, err) {
			b.editList(chatID, messageID, expensesText(sess), b.getExpensesKeyboard(sess.Expenses.Expenses()))
		}

	case strings.HasPrefix(data, callbackExpenseDelete):
		err := sess.Expenses.RemoveExpense(ctx, strings.TrimPrefix(data, callbackExpenseDelete))
		if !b.checkMutation(chatID, err) {
			b.editList(chatID, messageID, expensesText(sess), b.getExpensesKeyboard(sess.Expenses.Expenses()))
		}
	}

	// Отвечаем на callback, чтобы убрать loading indicator
	if _, err := b.sender.Request(tgbotapi.NewCallback(callback.ID, "")); err != nil {
		b.logger.Warn("failed to answer callback", zap.Error(err))
	}

	return nil
}

func (b *Bot) handleMessage(ctx context.Context, sess *service.Session, message *tgbotapi.Message) error {
	chatID := message.Chat.ID
	text := message.Text

	switch text {
	case buttonTasks:
		b.sendTasks(chatID, sess)
		return nil
	case buttonNewTask:
		b.handleAddTask(ctx, sess, chatID, "")
		return nil
	case buttonExpenses:
		b.sendExpenses(chatID, sess)
		return nil
	case buttonNewExpense:
		b.handleAddExpense(ctx, sess, chatID, "")
		return nil
	case buttonReport:
		b.handleReport(sess, chatID, "")
		return nil
	}

	// Проверяем, есть ли ожидаемое действие
	state, exists := b.states[chatID]
	if !exists {
		msg := tgbotapi.NewMessage(chatID, "Выберите действие:")
		msg.ReplyMarkup = b.getMainKeyboard()
		b.send(msg)
		return nil
	}

	switch {
	case state.AwaitingAction == awaitingTask:
		delete(b.states, chatID)
		b.addTask(ctx, sess, chatID, text)

	case state.AwaitingAction == awaitingExpense && state.SelectedCategoryID != "":
		// Обработка ввода суммы и описания расхода
		parts := strings.SplitN(strings.TrimSpace(text), " ", 2)
		if len(parts) != 2 {
			b.sendErrorMessage(chatID, "Неверный формат. Используйте: <сумма> <описание>")
			return nil
		}

		amount, err := parseAmount(parts[0])
		if err != nil {
			b.sendErrorMessage(chatID, "Неверный формат суммы. Используйте число, например: 1000.50")
			return nil
		}

		// состояние остается до успешного ввода, чтобы можно было исправиться
		expense, err := sess.Expenses.AddExpense(ctx, parts[1], state.SelectedCategoryID, amount)
		if b.checkMutation(chatID, err) {
			return nil
		}
		delete(b.states, chatID)

		b.logger.Info("expense saved", zap.Int64("chat_id", chatID), zap.String("id", expense.ID))
		msg := tgbotapi.NewMessage(chatID, fmt.Sprintf("Расход сохранён! ✅\n%s", expensesText(sess)))
		msg.ReplyMarkup = b.getMainKeyboard()
		b.send(msg)

	default:
		b.sendText(chatID, "Сначала выберите категорию расхода")
	}

	return nil
}

func (b *Bot) sendTasks(chatID int64, sess *service.Session) {
	msg := tgbotapi.NewMessage(chatID, tasksText(sess))
	if tasks := sess.Todos.Tasks(); len(tasks) > 0 {
		msg.ReplyMarkup = b.getTasksKeyboard(tasks)
	}
	b.send(msg)
}

func (b *Bot) sendExpenses(chatID int64, sess *service.Session) {
	msg := tgbotapi.NewMessage(chatID, expensesText(sess))
	if expenses := sess.Expenses.Expenses(); len(expenses) > 0 {
		msg.ReplyMarkup = b.getExpensesKeyboard(expenses)
	}
	b.send(msg)
}

func (b *Bot) editList(chatID int64, messageID int, text string, markup tgbotapi.InlineKeyboardMarkup) {
	if len(markup.InlineKeyboard) == 0 {
		b.send(tgbotapi.NewEditMessageText(chatID, messageID, text))
		return
	}
	b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, markup))
}

func tasksText(sess *service.Session) string {
	tasks := sess.Todos.Tasks()
	if len(tasks) == 0 {
		return "📋 Список задач пуст"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📋 Задачи (осталось %d из %d):\n\n", sess.Todos.Pending(), len(tasks))
	for i, t := range tasks {
		mark := "⬜"
		if t.Completed {
			mark = "✅"
		}
		fmt.Fprintf(&sb, "%d. %s %s\n", i+1, mark, t.Description)
	}
	return sb.String()
}

func expensesText(sess *service.Session) string {
	tracker := sess.Expenses
	expenses := tracker.Expenses()
	if len(expenses) == 0 {
		return "💸 Расходов пока нет"
	}

	summary := tracker.Summary()
	var sb strings.Builder
	fmt.Fprintf(&sb, "💸 %s на сумму %s\n", summary.CountLabel, tracker.FormatAmount(summary.Total))
	if summary.Outstanding != summary.Total {
		fmt.Fprintf(&sb, "К возмещению: %s\n", tracker.FormatAmount(summary.Outstanding))
	}
	sb.WriteString("\n")

	for i, e := range expenses {
		mark := ""
		if e.Reimbursed {
			mark = " ↩️"
		}
		fmt.Fprintf(&sb, "%d. %s (%s): %s%s\n", i+1, e.Description, e.CategoryName, tracker.FormatAmount(e.Amount), mark)
	}
	return sb.String()
}

func summaryText(sess *service.Session) string {
	summary := sess.Expenses.Summary()
	return fmt.Sprintf("🗓 Сводка\n\n📋 Невыполненных задач: %d\n💸 %s на сумму %s\n↩️ К возмещению: %s",
		sess.Todos.Pending(),
		summary.CountLabel,
		sess.Expenses.FormatAmount(summary.Total),
		sess.Expenses.FormatAmount(summary.Outstanding))
}

// parseAmount принимает "1000.50" и "1000,50"
func parseAmount(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", "."), 64)
}

// resolveCategory принимает ID категории или ее название
func resolveCategory(s string) string {
	for _, c := range model.Categories() {
		if strings.EqualFold(c.ID, s) || strings.EqualFold(c.Name, s) {
			return c.ID
		}
	}
	return s
}
