package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ivanoskov/tracker_bot/internal/model"
)

// Кнопки главного меню
const (
	buttonTasks      = "📋 Задачи"
	buttonNewTask    = "➕ Задача"
	buttonExpenses   = "💸 Расходы"
	buttonNewExpense = "➕ Расход"
	buttonReport     = "📊 Отчёт"
)

// Префиксы callback-данных
const (
	callbackCategory      = "category_"
	callbackTaskToggle    = "task_toggle:"
	callbackTaskDelete    = "task_delete:"
	callbackExpenseRefund = "expense_refund:"
	callbackExpenseDelete = "expense_delete:"
)

func (b *Bot) getMainKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(buttonTasks),
			tgbotapi.NewKeyboardButton(buttonNewTask),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(buttonExpenses),
			tgbotapi.NewKeyboardButton(buttonNewExpense),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(buttonReport),
		),
	)
}

func (b *Bot) getCategoriesKeyboard(categories []model.Category) tgbotapi.InlineKeyboardMarkup {
	var buttons [][]tgbotapi.InlineKeyboardButton

	for _, category := range categories {
		buttons = append(buttons, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(category.Name, callbackCategory+category.ID),
		))
	}

	return tgbotapi.NewInlineKeyboardMarkup(buttons...)
}

func (b *Bot) getTasksKeyboard(tasks []model.Task) tgbotapi.InlineKeyboardMarkup {
	var buttons [][]tgbotapi.InlineKeyboardButton

	for i, task := range tasks {
		mark := "⬜"
		if task.Completed {
			mark = "✅"
		}
		buttons = append(buttons, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("%s %d", mark, i+1), callbackTaskToggle+task.ID),
			tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("🗑 %d", i+1), callbackTaskDelete+task.ID),
		))
	}

	return tgbotapi.NewInlineKeyboardMarkup(buttons...)
}

func (b *Bot) getExpensesKeyboard(expenses []model.Expense) tgbotapi.InlineKeyboardMarkup {
	var buttons [][]tgbotapi.InlineKeyboardButton

	for i, expense := range expenses {
		mark := "💳"
		if expense.Reimbursed {
			mark = "↩️"
		}
		buttons = append(buttons, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("%s %d", mark, i+1), callbackExpenseRefund+expense.ID),
			tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("🗑 %d", i+1), callbackExpenseDelete+expense.ID),
		))
	}

	return tgbotapi.NewInlineKeyboardMarkup(buttons...)
}
