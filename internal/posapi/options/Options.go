package options

import (
	"strconv"
	"time"
)

type OptionStruct struct {
	Key   string
	Value string
}

type Option func(*OptionStruct)

func Table(id int) Option {
	return func(f *OptionStruct) {
		f.Key = "mesaId"
		f.Value = strconv.Itoa(id)
	}
}

func State(value string) Option {
	return func(f *OptionStruct) {
		f.Key = "estado"
		f.Value = value
	}
}

func Date(value time.Time) Option {
	return func(f *OptionStruct) {
		f.Key = "fecha"
		f.Value = value.Format("2006-01-02")
	}
}

func Category(id int) Option {
	return func(f *OptionStruct) {
		f.Key = "categoriaId"
		f.Value = strconv.Itoa(id)
	}
}

func Waiter(id int) Option {
	return func(f *OptionStruct) {
		f.Key = "camareroId"
		f.Value = strconv.Itoa(id)
	}
}

func Available(value bool) Option {
	return func(f *OptionStruct) {
		f.Key = "disponible"
		f.Value = strconv.FormatBool(value)
	}
}

func From(value time.Time) Option {
	return func(f *OptionStruct) {
		f.Key = "desde"
		f.Value = value.Format("2006-01-02")
	}
}

func To(value time.Time) Option {
	return func(f *OptionStruct) {
		f.Key = "hasta"
		f.Value = value.Format("2006-01-02")
	}
}
