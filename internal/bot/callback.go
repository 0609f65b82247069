package bot

import (
	"net/url"
	"strings"
)

// Действия inline-кнопок. Аргументы дописываются через ":".
const (
	actMenu        = "menu"
	actHelp        = "help"
	actRandom      = "random"
	actAskName     = "name"
	actAskFind     = "find"
	actAskSettings = "settings"
	actBack        = "back"
	actAreas       = "areas" // страница списка кухонь
	actCategories  = "cats"  // страница списка категорий
	actArea        = "area"  // кухня, страница
	actCategory    = "cat"   // категория, страница
	actMeal        = "meal"  // id рецепта
	actFav         = "fav"   // id рецепта
	actHistory     = "history"
	actFavorites   = "favs"
	actClear       = "clear"   // вид: history/favorites
	actConfirm     = "confirm" // ответ: yes/no
)

// encodeCallback собирает payload вида action:arg1:arg2. Аргументы
// percent-кодируются: названия кухонь и категорий могут содержать
// пробелы, двоеточия и не-ASCII, а ":" — наш разделитель.
func encodeCallback(action string, args ...string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, action)
	for _, a := range args {
		parts = append(parts, url.QueryEscape(a))
	}
	return strings.Join(parts, ":")
}

// decodeCallback разбирает payload обратно. Битый аргумент
// отбрасывает весь payload — кнопку с таким data мы не собирали.
func decodeCallback(data string) (action string, args []string, ok bool) {
	parts := strings.Split(data, ":")
	action = parts[0]
	for _, p := range parts[1:] {
		arg, err := url.QueryUnescape(p)
		if err != nil {
			return "", nil, false
		}
		args = append(args, arg)
	}
	return action, args, true
}
