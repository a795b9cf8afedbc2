package models

import "testing"

func TestStatsResponse_TopUFs(t *testing.T) {
	s := StatsResponse{
		TotalDespesas: 100,
		DespesasPorUF: []EstatisticaUF{
			{UF: "RJ", Total: 20},
			{UF: "SP", Total: 50},
			{UF: "MG", Total: 30},
		},
	}

	top := s.TopUFs(2)
	if len(top) != 2 {
		t.Fatalf("len(TopUFs(2)) = %d, want 2", len(top))
	}
	if top[0].UF != "SP" || top[1].UF != "MG" {
		t.Errorf("TopUFs order = %v", top)
	}
	if s.DespesasPorUF[0].UF != "RJ" {
		t.Error("TopUFs must not reorder the receiver")
	}

	if all := s.TopUFs(-1); len(all) != 3 {
		t.Errorf("TopUFs(-1) len = %d, want 3", len(all))
	}
}

func TestStatsResponse_UFShare(t *testing.T) {
	s := StatsResponse{TotalDespesas: 200}
	if got := s.UFShare(EstatisticaUF{Total: 50}); got != 0.25 {
		t.Errorf("UFShare() = %v, want 0.25", got)
	}

	empty := StatsResponse{}
	if got := empty.UFShare(EstatisticaUF{Total: 50}); got != 0 {
		t.Errorf("UFShare() without total = %v, want 0", got)
	}
}

func TestDespesa_Helpers(t *testing.T) {
	v := 10.0
	d := Despesa{Ano: 2023, Trimestre: 4, ValorDespesas: &v}
	if d.Periodo() != "2023 T4" {
		t.Errorf("Periodo() = %q", d.Periodo())
	}
	if !d.ValidQuarter() {
		t.Error("quarter 4 should be valid")
	}
	if (Despesa{Trimestre: 5}).ValidQuarter() {
		t.Error("quarter 5 should be invalid")
	}
	if (Despesa{}).Valor() != 0 {
		t.Error("missing valor should be 0")
	}
}

func TestChronological(t *testing.T) {
	a, b, c := 1.0, 2.0, 3.0
	newestFirst := []Despesa{
		{Ano: 2024, Trimestre: 3, ValorDespesas: &c},
		{Ano: 2024, Trimestre: 2, ValorDespesas: &b},
		{Ano: 2024, Trimestre: 1, ValorDespesas: &a},
	}

	got := Chronological(newestFirst)
	want := []float64{1, 2, 3}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Chronological() = %v, want %v", got, want)
		}
	}
}
