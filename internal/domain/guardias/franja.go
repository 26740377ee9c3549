package guardias

// MinutosDia es la cantidad de minutos de un día calendario.
const MinutosDia = 24 * 60

// segmento es un intervalo [Ini, Fin) en minutos desde medianoche, sin cruce.
type segmento struct {
	ini, fin int
}

// segmentos descompone un intervalo horario en segmentos sin cruce de medianoche.
// Si fin <= ini el intervalo cruza medianoche y se parte en dos.
func segmentos(ini, fin int) []segmento {
	if fin > ini {
		return []segmento{{ini, fin}}
	}
	return []segmento{{ini, MinutosDia}, {0, fin}}
}

func (s segmento) contiene(t int) bool {
	return t >= s.ini && t < s.fin
}

func (s segmento) cubre(otro segmento) bool {
	return s.ini <= otro.ini && s.fin >= otro.fin
}

// EnFranja indica si el minuto t cae dentro de la franja [ini, fin),
// contemplando franjas que cruzan medianoche.
func EnFranja(ini, fin, t int) bool {
	for _, s := range segmentos(ini, fin) {
		if s.contiene(t) {
			return true
		}
	}
	return false
}

// SolapaFranja decide si un incidente [iniInc, finInc) solapa la franja de un
// código [iniFra, finFra). El código aplica si el inicio del incidente cae en
// la franja, o el fin cae en la franja, o el incidente contiene la franja
// completa. Ambos intervalos pueden cruzar medianoche.
func SolapaFranja(iniInc, finInc, iniFra, finFra int) bool {
	if EnFranja(iniFra, finFra, iniInc) || EnFranja(iniFra, finFra, finInc) {
		return true
	}
	// El incidente contiene la franja: cada segmento de la franja debe estar
	// cubierto por algún segmento del incidente.
	segsInc := segmentos(iniInc, finInc)
	for _, sf := range segmentos(iniFra, finFra) {
		cubierto := false
		for _, si := range segsInc {
			if si.cubre(sf) {
				cubierto = true
				break
			}
		}
		if !cubierto {
			return false
		}
	}
	return true
}

// MinutoDelDia convierte hora y minuto a minutos desde medianoche.
func MinutoDelDia(hora, minuto int) int {
	return hora*60 + minuto
}
