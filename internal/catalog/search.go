package catalog

import (
	"context"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/pinghoyk/recipebot/pkg/models"
)

// maxTokens — сколько ингредиентов учитываем в одном запросе.
const maxTokens = 8

// IngredientFilter — часть шлюза, нужная поиску пересечением.
type IngredientFilter interface {
	FilterByIngredient(ctx context.Context, token string) ([]models.Meal, error)
}

// NormalizeTokens разбирает строку пользователя на токены-ингредиенты:
// разделители — запятая, точка с запятой, перевод строки; токены
// обрезаются, приводятся к нижнему регистру, внутренние пробелы
// заменяются на "_" (так их понимает каталог). Пустые выбрасываются,
// остаются первые maxTokens.
func NormalizeTokens(line string) []string {
	parts := strings.FieldsFunc(line, func(r rune) bool {
		return r == ',' || r == ';' || r == '\n'
	})

	var out []string
	for _, p := range parts {
		t := strings.ToLower(strings.TrimSpace(p))
		if t == "" {
			continue
		}
		out = append(out, strings.Join(strings.Fields(t), "_"))
		if len(out) == maxTokens {
			break
		}
	}
	return out
}

// IntersectByIngredients запрашивает каталог по каждому токену
// параллельно и возвращает рецепты, попавшие во все ответы сразу.
// Ноль токенов — пустой результат без единого запроса. Любой
// транспортный сбой роняет всю операцию (fail-fast): частичное
// пересечение может содержать рецепты без запрошенного ингредиента.
// Порядок результата — по возрастанию id, от порядка прихода
// ответов не зависит.
func IntersectByIngredients(ctx context.Context, f IngredientFilter, tokens []string) ([]models.Meal, error) {
	if len(tokens) == 0 {
		return nil, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	sets := make([]map[string]string, len(tokens)) // id -> название

	for i, token := range tokens {
		i, token := i, token
		g.Go(func() error {
			meals, err := f.FilterByIngredient(gctx, token)
			if err != nil {
				return err
			}
			set := make(map[string]string, len(meals))
			for _, m := range meals {
				set[m.ID] = m.Name
			}
			sets[i] = set
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	common := sets[0]
	for _, set := range sets[1:] {
		next := make(map[string]string)
		for id, name := range common {
			if _, ok := set[id]; ok {
				next[id] = name
			}
		}
		common = next
	}

	out := make([]models.Meal, 0, len(common))
	for id, name := range common {
		out = append(out, models.Meal{ID: id, Name: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
