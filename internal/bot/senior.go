package bot

import (
	"fmt"
	"strconv"
	"strings"
)

// seniorReply ответ «старшекурсника» на свободный текст. Только шаблоны, без внешних API.
func seniorReply(text string, threshold int) string {
	low := strings.ToLower(text)
	switch {
	case strings.Contains(low, "посещ") || strings.Contains(low, "attendance"):
		return fmt.Sprintf("Слушай, %d%% — магическое число. Меньше — и пойдёшь уговаривать деканат. Смотри /attendance.", threshold)
	case strings.Contains(low, "прогул") || strings.Contains(low, "пропуст") || strings.Contains(low, "bunk"):
		return "Прогуливать можно, только если запас есть. Кнопка «Посещаемость» покажет, сколько пар можно пропустить."
	case strings.Contains(low, "еда") || strings.Contains(low, "столов") || strings.Contains(low, "canteen") || strings.Contains(low, "food"):
		return "Гоби манчуриан. Всё, это вся пищевая пирамида кампуса."
	case strings.Contains(low, "расписан") || strings.Contains(low, "timetable"):
		return "Загрузи расписание через /upload — предметы заведутся сами."
	}
	return "Я пока работаю в офлайн-режиме. Но серьёзно: не забивай на лабы. /help — что я умею."
}

// excuseReply отмазка по ситуации. Аргумент "/excuse [0-100] ситуация":
// число задаёт уровень хаоса, по умолчанию 50.
func excuseReply(args string) string {
	level, situation := splitLevel(args)
	if situation == "" {
		return "Опиши ситуацию: /excuse опоздал на лабу\nМожно добавить уровень хаоса 0-100: /excuse 90 проспал экзамен"
	}
	switch {
	case level < 34:
		return fmt.Sprintf("«%s»: семейные обстоятельства, подробности готов обсудить лично. Скучно, зато работает.", situation)
	case level < 67:
		return fmt.Sprintf("«%s»: ноутбук запустил обновление BIOS, которое идёт ровно 57 минут. Прервать нельзя, сам понимаешь.", situation)
	default:
		return fmt.Sprintf("«%s»: меня похитили инопланетяне, но вернули к началу следующей пары. Справку не дали.", situation)
	}
}

func splitLevel(args string) (int, string) {
	args = strings.TrimSpace(args)
	first, rest, _ := strings.Cut(args, " ")
	if n, err := strconv.Atoi(first); err == nil {
		if n < 0 {
			n = 0
		}
		if n > 100 {
			n = 100
		}
		return n, strings.TrimSpace(rest)
	}
	return 50, args
}

type emailTone struct {
	opening string
	closing string
}

var emailTones = map[string]emailTone{
	"professional": {
		opening: "Обращаюсь к Вам по вопросу",
		closing: "Буду признателен за ответ в удобное для Вас время.",
	},
	"apologetic": {
		opening: "Прошу прощения за беспокойство. Пишу по вопросу",
		closing: "Искренне сожалею о неудобствах и готов всё исправить.",
	},
	"desperate": {
		opening: "Очень прошу Вашей помощи. Речь о вопросе",
		closing: "Это моя последняя надежда, без Вас не справлюсь.",
	},
	"urgent": {
		opening: "Срочно. Пишу по вопросу",
		closing: "Прошу ответить как можно скорее.",
	},
}

// toneAliases русские названия тонов.
var toneAliases = map[string]string{
	"официально": "professional",
	"извинение":  "apologetic",
	"отчаянно":   "desperate",
	"срочно":     "urgent",
}

// emailDraft черновик письма преподавателю. Аргумент "/email [тон] тема";
// тон professional | apologetic | desperate | urgent, по умолчанию professional.
func emailDraft(args, signature string) string {
	args = strings.TrimSpace(args)
	tone := "professional"
	first, rest, _ := strings.Cut(args, " ")
	key := strings.ToLower(first)
	if alias, ok := toneAliases[key]; ok {
		key = alias
	}
	if _, ok := emailTones[key]; ok {
		tone = key
		args = strings.TrimSpace(rest)
	}
	if args == "" {
		return "Напиши тему: /email перенос сдачи лабы\nТон по желанию: /email срочно пересдача"
	}
	t := emailTones[tone]
	return fmt.Sprintf("Уважаемый преподаватель!\n\n%s: %s.\n\n%s\n\nС уважением,\n%s",
		t.opening, args, t.closing, signature)
}
