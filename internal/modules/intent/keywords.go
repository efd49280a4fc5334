// README: Keyword tables for the local classifier: discipline scoring and urgency tiers.
package intent

import "strings"

// disciplineKeywords scores free text against each discipline. Keywords are
// accent-free; callers score against Normalize()d text.
var disciplineKeywords = map[string][]string{
	"plomeria": {
		"fuga", "gotera", "tuberia", "agua", "bano", "grifo", "llave de agua",
		"inodoro", "wc", "taza", "drenaje", "tinaco", "boiler", "calentador",
		"regadera", "lavabo", "plomero", "fontanero",
	},
	"electricidad": {
		"luz", "foco", "lampara", "corto", "apagador", "contacto", "enchufe",
		"cable", "pastilla", "breaker", "ventilador", "electricista", "voltaje",
		"instalacion electrica",
	},
	"carpinteria": {
		"puerta", "mueble", "madera", "closet", "repisa", "bisagra", "cajon",
		"carpintero", "barniz",
	},
	"pintura": {
		"pintar", "pintura", "pared", "brocha", "rodillo", "gotele", "pintor",
	},
	"limpieza": {
		"limpieza", "limpiar", "aseo", "alfombra", "vidrios", "desinfectar",
	},
	"jardineria": {
		"jardin", "pasto", "cesped", "poda", "podar", "arbol", "plantas",
		"jardinero",
	},
	"cerrajeria": {
		"cerradura", "chapa", "candado", "cerrajero", "llaves", "me quede afuera",
	},
	"albanileria": {
		"muro", "tabique", "cemento", "yeso", "azulejo", "loseta", "piso",
		"albanil", "impermeabilizar", "filtracion",
	},
	"climatizacion": {
		"aire acondicionado", "minisplit", "clima", "calefaccion", "refrigeracion",
	},
}

// Urgency keyword tiers, tested in order: alta first, then media, then baja.
// The first tier with a hit wins; no hit defaults to media.
var (
	urgencyAltaKeywords = []string{
		"urgente", "emergencia", "inundacion", "fuga", "ya mismo", "ahora",
		"inmediato", "corto circuito", "no funciona", "se esta saliendo",
	}
	urgencyMediaKeywords = []string{
		"pronto", "esta semana", "en unos dias", "cuanto antes",
	}
	urgencyBajaKeywords = []string{
		"cuando puedas", "sin prisa", "proximamente", "algun dia", "cotizar",
		"presupuesto", "mas adelante",
	}
)

// detectUrgency derives the urgency tier from a normalized description.
func detectUrgency(normalized string) Urgency {
	for _, kw := range urgencyAltaKeywords {
		if strings.Contains(normalized, kw) {
			return UrgencyAlta
		}
	}
	for _, kw := range urgencyMediaKeywords {
		if strings.Contains(normalized, kw) {
			return UrgencyMedia
		}
	}
	for _, kw := range urgencyBajaKeywords {
		if strings.Contains(normalized, kw) {
			return UrgencyBaja
		}
	}
	return UrgencyMedia
}

// scoreDisciplines counts keyword hits per discipline, keeping only
// disciplines with a positive score.
func scoreDisciplines(normalized string) map[string]int {
	scores := make(map[string]int)
	for discipline, keywords := range disciplineKeywords {
		score := 0
		for _, kw := range keywords {
			if strings.Contains(normalized, kw) {
				score++
			}
		}
		if score > 0 {
			scores[discipline] = score
		}
	}
	return scores
}
