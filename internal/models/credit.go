package models

// CSV columns of a credit record.
const (
	ColPurpose     = "objetivo_credito"
	ColAmount      = "importe_solicitado"
	ColDuration    = "duracion_credito"
	ColState       = "estado_credito_N"
	ColLatePayment = "falta_pago"
	ColTenure      = "antiguedad_cliente"
	ColDependents  = "personas_a_cargo"
	ColInterest    = "tasa_interes"
)

// RequiredColumns lists every column the dashboard reads.
var RequiredColumns = []string{
	ColPurpose,
	ColAmount,
	ColDuration,
	ColState,
	ColLatePayment,
	ColTenure,
	ColDependents,
	ColInterest,
}

// Customer tenure buckets as stored in the dataset.
const (
	TenureUnder2y = "menor_2y"
	Tenure2yTo4y  = "2y_a_4y"
	TenureOver4y  = "mayor_4y"
)

// TenureOrder is the display order of the tenure buckets.
var TenureOrder = []string{TenureUnder2y, Tenure2yTo4y, TenureOver4y}

// TenureLabels maps a stored tenure bucket to its display label.
var TenureLabels = map[string]string{
	TenureUnder2y: "<2y",
	Tenure2yTo4y:  "2y–4y",
	TenureOver4y:  ">4y",
}

// CorrelationColumns are the numeric columns of the correlation heatmap.
var CorrelationColumns = []string{ColAmount, ColDuration, ColDependents}
