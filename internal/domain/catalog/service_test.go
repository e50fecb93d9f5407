package catalog

import (
	"context"
	"fmt"
	"testing"
)

type mockRepo struct {
	drugs     map[string]*Drug
	procs     map[string]*Procedure
	procTypes map[string]*ProcedureType
	userTypes map[string]*UserType
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		drugs:     make(map[string]*Drug),
		procs:     make(map[string]*Procedure),
		procTypes: make(map[string]*ProcedureType),
		userTypes: make(map[string]*UserType),
	}
}

func (m *mockRepo) CreateDrug(ctx context.Context, d *Drug) error {
	if _, ok := m.drugs[d.Code]; ok {
		return fmt.Errorf("duplicate code %s", d.Code)
	}
	cp := *d
	m.drugs[d.Code] = &cp
	return nil
}

func (m *mockRepo) ListDrugs(ctx context.Context) ([]Drug, error) {
	var list []Drug
	for _, d := range m.drugs {
		list = append(list, *d)
	}
	return list, nil
}

func (m *mockRepo) UpdateDrug(ctx context.Context, d *Drug) error {
	if _, ok := m.drugs[d.Code]; !ok {
		return fmt.Errorf("drug %s not found", d.Code)
	}
	cp := *d
	m.drugs[d.Code] = &cp
	return nil
}

func (m *mockRepo) DeleteDrug(ctx context.Context, code string) error {
	if _, ok := m.drugs[code]; !ok {
		return fmt.Errorf("drug %s not found", code)
	}
	delete(m.drugs, code)
	return nil
}

func (m *mockRepo) ListDrugCodes(ctx context.Context) ([]string, error) {
	var codes []string
	for c := range m.drugs {
		codes = append(codes, c)
	}
	return codes, nil
}

func (m *mockRepo) CreateProcedure(ctx context.Context, p *Procedure) error {
	cp := *p
	m.procs[p.Code] = &cp
	return nil
}

func (m *mockRepo) ListProcedures(ctx context.Context) ([]Procedure, error) {
	var list []Procedure
	for _, p := range m.procs {
		list = append(list, *p)
	}
	return list, nil
}

func (m *mockRepo) UpdateProcedure(ctx context.Context, p *Procedure) error {
	if _, ok := m.procs[p.Code]; !ok {
		return fmt.Errorf("procedure %s not found", p.Code)
	}
	cp := *p
	m.procs[p.Code] = &cp
	return nil
}

func (m *mockRepo) DeleteProcedure(ctx context.Context, code string) error {
	delete(m.procs, code)
	return nil
}

func (m *mockRepo) ListProcedureCodes(ctx context.Context) ([]string, error) {
	var codes []string
	for c := range m.procs {
		codes = append(codes, c)
	}
	return codes, nil
}

func (m *mockRepo) CreateProcedureType(ctx context.Context, t *ProcedureType) error {
	cp := *t
	m.procTypes[t.Code] = &cp
	return nil
}

func (m *mockRepo) ListProcedureTypes(ctx context.Context) ([]ProcedureType, error) {
	var list []ProcedureType
	for _, t := range m.procTypes {
		list = append(list, *t)
	}
	return list, nil
}

func (m *mockRepo) UpdateProcedureType(ctx context.Context, t *ProcedureType) error {
	if _, ok := m.procTypes[t.Code]; !ok {
		return fmt.Errorf("procedure type %s not found", t.Code)
	}
	cp := *t
	m.procTypes[t.Code] = &cp
	return nil
}

func (m *mockRepo) DeleteProcedureType(ctx context.Context, code string) error {
	delete(m.procTypes, code)
	return nil
}

func (m *mockRepo) ListProcedureTypeCodes(ctx context.Context) ([]string, error) {
	var codes []string
	for c := range m.procTypes {
		codes = append(codes, c)
	}
	return codes, nil
}

func (m *mockRepo) CreateUserType(ctx context.Context, t *UserType) error {
	cp := *t
	m.userTypes[t.Code] = &cp
	return nil
}

func (m *mockRepo) ListUserTypes(ctx context.Context) ([]UserType, error) {
	var list []UserType
	for _, t := range m.userTypes {
		list = append(list, *t)
	}
	return list, nil
}

func (m *mockRepo) UpdateUserType(ctx context.Context, t *UserType) error {
	if _, ok := m.userTypes[t.Code]; !ok {
		return fmt.Errorf("user type %s not found", t.Code)
	}
	cp := *t
	m.userTypes[t.Code] = &cp
	return nil
}

func (m *mockRepo) DeleteUserType(ctx context.Context, code string) error {
	delete(m.userTypes, code)
	return nil
}

func (m *mockRepo) ListUserTypeCodes(ctx context.Context) ([]string, error) {
	var codes []string
	for c := range m.userTypes {
		codes = append(codes, c)
	}
	return codes, nil
}

func passthroughTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func TestCreateProcedure_SeedsP0001(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, passthroughTx)
	p := &Procedure{Name: "ทำแผล", Price: 300}
	if err := svc.CreateProcedure(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Code != "P0001" {
		t.Fatalf("expected P0001, got %s", p.Code)
	}
}

func TestCreateProcedure_MaxPlusOneIgnoresGaps(t *testing.T) {
	repo := newMockRepo()
	repo.procs["P0001"] = &Procedure{Code: "P0001"}
	repo.procs["P0003"] = &Procedure{Code: "P0003"}
	svc := NewService(repo, passthroughTx)
	p := &Procedure{Name: "ฉีดยา", Price: 100}
	if err := svc.CreateProcedure(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Code != "P0004" {
		t.Fatalf("expected P0004, got %s", p.Code)
	}
}

func TestCreateProcedure_IgnoresMalformedCodes(t *testing.T) {
	repo := newMockRepo()
	repo.procs["P0002"] = &Procedure{Code: "P0002"}
	repo.procs["PX"] = &Procedure{Code: "PX"}
	svc := NewService(repo, passthroughTx)
	p := &Procedure{Name: "เย็บแผล", Price: 500}
	if err := svc.CreateProcedure(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Code != "P0003" {
		t.Fatalf("expected P0003, got %s", p.Code)
	}
}

func TestCreateProcedureType_SeedsTP001(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, passthroughTx)
	pt := &ProcedureType{Name: "หัตถการทั่วไป"}
	if err := svc.CreateProcedureType(context.Background(), pt); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pt.Code != "TP001" {
		t.Fatalf("expected TP001, got %s", pt.Code)
	}
	second := &ProcedureType{Name: "หัตถการพิเศษ"}
	if err := svc.CreateProcedureType(context.Background(), second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.Code != "TP002" {
		t.Fatalf("expected TP002, got %s", second.Code)
	}
}

func TestCreateDrug_SequentialCodes(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, passthroughTx)
	d := &Drug{Name: "Paracetamol 500mg", Unit: "TAB", Price: 2}
	if err := svc.CreateDrug(context.Background(), d); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Code != "D0001" {
		t.Fatalf("expected D0001, got %s", d.Code)
	}
}

func TestCreateDrug_Validation(t *testing.T) {
	svc := NewService(newMockRepo(), passthroughTx)
	if err := svc.CreateDrug(context.Background(), &Drug{}); err == nil {
		t.Fatal("expected missing name error")
	}
	if err := svc.CreateDrug(context.Background(), &Drug{Name: "x", Price: -1}); err == nil {
		t.Fatal("expected negative price error")
	}
}

func TestCreateUserType_SeedsUT001(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, passthroughTx)
	ut := &UserType{Name: "พยาบาล"}
	if err := svc.CreateUserType(context.Background(), ut); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ut.Code != "UT001" {
		t.Fatalf("expected UT001, got %s", ut.Code)
	}
}

func TestUpdateDrug_UnknownCode(t *testing.T) {
	svc := NewService(newMockRepo(), passthroughTx)
	if err := svc.UpdateDrug(context.Background(), &Drug{Code: "D0009", Name: "x"}); err == nil {
		t.Fatal("expected not found error")
	}
}
