package clubs

import "strings"

type Status string

const (
	StatusRecruiting Status = "RECRUITING"
	StatusFull       Status = "FULL"
)

type Club struct {
	ID          string
	Name        string
	Category    string
	Description string
	Members     int
	Icon        string
	Status      Status
}

// Directory справочник студенческих клубов. Меняется редко, поэтому живёт в коде, а не в БД.
var Directory = []Club{
	{ID: "1", Name: "Aurora", Category: "Theatre", Description: "Флагманский театральный клуб.", Members: 85, Icon: "🎭", Status: StatusRecruiting},
	{ID: "2", Name: "Black Pearl", Category: "Theatre", Description: "Мрачные и драматичные постановки.", Members: 42, Icon: "🖤", Status: StatusFull},
	{ID: "3", Name: "Team Panthers", Category: "Dance", Description: "Танцевальная команда, берущая каждую сцену.", Members: 65, Icon: "🐆", Status: StatusRecruiting},
	{ID: "4", Name: "Decoders", Category: "Technical", Description: "Спортивное программирование и хакатоны.", Members: 120, Icon: "💻", Status: StatusRecruiting},
	{ID: "5", Name: "Soaring Eagles", Category: "Technical", Description: "Беспилотники и дроны.", Members: 30, Icon: "🦅", Status: StatusFull},
	{ID: "6", Name: "Avalanche", Category: "Management", Description: "Клуб предпринимателей (E-Cell).", Members: 55, Icon: "📈", Status: StatusRecruiting},
	{ID: "7", Name: "Ad Lib Arts", Category: "Photography", Description: "Фотография и истории в кадре.", Members: 78, Icon: "📸", Status: StatusFull},
	{ID: "8", Name: "SARK", Category: "Technical", Description: "Железо, IoT и любительское радио.", Members: 45, Icon: "📡", Status: StatusRecruiting},
	{ID: "9", Name: "AI Brewery", Category: "Technical", Description: "Исследования в ML и AI.", Members: 60, Icon: "🧠", Status: StatusRecruiting},
	{ID: "10", Name: "TEDx", Category: "Management", Description: "Организация выступлений и событий.", Members: 25, Icon: "❌", Status: StatusFull},
	{ID: "11", Name: "Quest", Category: "Management", Description: "Походы, природа и выживание.", Members: 90, Icon: "🏔️", Status: StatusRecruiting},
	{ID: "12", Name: "CORSIT", Category: "Robotics", Description: "Робототехника и встраиваемые системы.", Members: 50, Icon: "🤖", Status: StatusRecruiting},
}

// Filter условия поиска; пустые поля не ограничивают выборку.
type Filter struct {
	Query          string
	Category       string
	RecruitingOnly bool
}

// Search клубы, в названии которых есть Query (без учёта регистра). Порядок справочника сохраняется.
func Search(all []Club, f Filter) []Club {
	q := strings.ToLower(strings.TrimSpace(f.Query))
	var out []Club
	for _, c := range all {
		if q != "" && !strings.Contains(strings.ToLower(c.Name), q) {
			continue
		}
		if f.Category != "" && !strings.EqualFold(c.Category, f.Category) {
			continue
		}
		if f.RecruitingOnly && c.Status != StatusRecruiting {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Categories категории в порядке первого появления.
func Categories(all []Club) []string {
	seen := map[string]bool{}
	var out []string
	for _, c := range all {
		if !seen[c.Category] {
			seen[c.Category] = true
			out = append(out, c.Category)
		}
	}
	return out
}
