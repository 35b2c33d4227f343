package game

import (
	"math/rand/v2"
	"strings"
	"unicode/utf8"
)

const (
	// MaxWordLength é o maior tamanho (em runas) aceito para uma palavra personalizada.
	MaxWordLength = 32
	// MaxCustomWords limita quantas palavras personalizadas uma sala guarda.
	MaxCustomWords = 500
)

// DefaultWords é o banco padrão usado quando a sala não traz uma lista própria.
var DefaultWords = []string{
	// Animais
	"cat", "dog", "lion", "tiger", "elephant", "giraffe", "zebra", "fish", "shark", "whale",
	"dolphin", "penguin", "kangaroo", "monkey", "rabbit", "snake", "bat", "camel", "cow", "horse",

	// Comida
	"pizza", "burger", "ice cream", "hot dog", "cake", "apple", "banana", "carrot", "sandwich",
	"cheese", "bread", "donut", "egg", "fries", "grapes", "lemon", "noodles", "orange", "peach", "popcorn",

	// Objetos
	"bottle", "cup", "glass", "pen", "pencil", "phone", "laptop", "computer", "keyboard", "mouse",
	"chair", "table", "mirror", "clock", "lamp", "book", "scissors", "backpack", "umbrella", "key",

	// Natureza
	"sun", "moon", "star", "cloud", "rain", "snowflake", "tree", "flower", "leaf", "mountain",
	"river", "ocean", "volcano", "fire", "ice", "lightning", "tornado", "rock", "desert", "cave",

	// Veículos
	"car", "bus", "truck", "train", "airplane", "boat", "ship", "bicycle", "motorcycle", "helicopter",
	"rocket", "submarine", "scooter", "skateboard", "ambulance", "fire truck", "tractor", "jeep", "van", "taxi",

	// Roupas
	"shirt", "pants", "shorts", "jacket", "hat", "cap", "dress", "skirt", "shoes", "socks",
	"gloves", "scarf", "belt", "tie", "boots", "glasses", "watch", "sunglasses", "hoodie", "suit",

	// Esportes
	"football", "basketball", "tennis", "cricket", "golf", "baseball", "hockey", "badminton", "volleyball", "boxing",
	"swimming", "cycling", "skiing", "surfing", "karate", "chess", "skating", "bowling", "archery", "table tennis",

	// Fantasia
	"dragon", "unicorn", "fairy", "wizard", "witch", "ghost", "zombie", "vampire", "mermaid", "alien",
	"robot", "superhero", "monster", "dinosaur", "knight", "sword", "magic wand", "castle", "treasure", "pirate",

	// Lugares e construções
	"house", "building", "school", "hospital", "church", "bridge", "tower", "pyramid", "tent", "palace",
	"barn", "igloo", "mosque", "lighthouse", "windmill", "fountain", "fence", "road", "airport", "train station",

	// Ferramentas
	"hammer", "screwdriver", "wrench", "saw", "drill", "shovel", "rake", "broom", "mop", "axe",
	"ladder", "toolbox", "needle", "pliers", "tape", "glue", "paintbrush", "bucket", "plunger", "rope",

	// Tecnologia
	"camera", "TV", "radio", "microphone", "speaker", "headphones", "remote", "battery", "charger", "drone",
	"tablet", "monitor", "printer", "projector", "game console", "joystick", "router", "satellite", "VR headset", "calculator",

	// Diversos
	"balloon", "gift", "flag", "medal", "trophy", "puzzle", "map", "ticket", "calendar", "envelope",
	"mailbox", "paint", "soap", "toothbrush", "toilet", "sink", "bed", "fan", "curtain", "carpet",
}

// SanitizeWords limpa uma lista personalizada: remove espaços nas pontas,
// entradas vazias ou longas demais e duplicatas (sem diferenciar maiúsculas).
// Retorna nil quando nada sobra.
func SanitizeWords(custom []string) []string {
	var words []string
	seen := make(map[string]struct{}, len(custom))
	for _, w := range custom {
		w = strings.TrimSpace(w)
		if w == "" || utf8.RuneCountInString(w) > MaxWordLength {
			continue
		}
		key := strings.ToLower(w)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		words = append(words, w)
		if len(words) == MaxCustomWords {
			break
		}
	}
	return words
}

// pickWords sorteia até n palavras distintas da lista. Se a lista não tiver
// palavras distintas suficientes, completa com o banco padrão.
func pickWords(rng *rand.Rand, list []string, n int) []string {
	result := make([]string, 0, n)
	seen := make(map[string]struct{}, n)

	take := func(source []string) {
		for _, i := range rng.Perm(len(source)) {
			if len(result) == n {
				return
			}
			key := strings.ToLower(source[i])
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			result = append(result, source[i])
		}
	}

	take(list)
	if len(result) < n {
		take(DefaultWords)
	}
	return result
}

// Mask esconde a palavra: um marcador por caractere, nenhuma letra revelada.
func Mask(word string) string {
	return strings.Repeat("_", utf8.RuneCountInString(word))
}
