package guardias

import "time"

// Franja nocturna: [21:00, 24:00) ∪ [00:00, 06:00).
const (
	NocturnoDesde = 21 * 60 // 21:00 en minutos del día
	NocturnoHasta = 6 * 60  // 06:00 en minutos del día
)

// MinutosNocturnos cuenta los minutos de [inicio, fin) que caen dentro de la
// franja nocturna. La franja cruza medianoche, así que por cada día calendario
// abarcado se computa el solape con [00:00, 06:00) y con [21:00, 24:00).
// Cada minuto se cuenta exactamente una vez; en los bordes (21:00 incluido,
// 06:00 excluido) no hay doble conteo ni hueco.
func MinutosNocturnos(inicio, fin time.Time) int {
	if !fin.After(inicio) {
		return 0
	}
	total := 0
	dia := time.Date(inicio.Year(), inicio.Month(), inicio.Day(), 0, 0, 0, 0, inicio.Location())
	for dia.Before(fin) {
		madrugada := [2]time.Time{dia, dia.Add(time.Duration(NocturnoHasta) * time.Minute)}
		noche := [2]time.Time{dia.Add(time.Duration(NocturnoDesde) * time.Minute), dia.AddDate(0, 0, 1)}
		total += solapeMinutos(inicio, fin, madrugada[0], madrugada[1])
		total += solapeMinutos(inicio, fin, noche[0], noche[1])
		dia = dia.AddDate(0, 0, 1)
	}
	return total
}

// solapeMinutos devuelve los minutos de intersección entre [aIni, aFin) y [bIni, bFin).
func solapeMinutos(aIni, aFin, bIni, bFin time.Time) int {
	ini := aIni
	if bIni.After(ini) {
		ini = bIni
	}
	fin := aFin
	if bFin.Before(fin) {
		fin = bFin
	}
	if !fin.After(ini) {
		return 0
	}
	return int(fin.Sub(ini) / time.Minute)
}
