package commands

import (
	"context"
	"errors"
	"math"
	"testing"

	"curia/contexts/governance/membership-service/domain/entities"
	domainerrors "curia/contexts/governance/membership-service/domain/errors"
	"curia/contexts/governance/membership-service/ports"
)

type fakeMembers struct {
	members map[string]entities.Member
	nextID  uint32
}

func newFakeMembers() *fakeMembers {
	return &fakeMembers{members: make(map[string]entities.Member)}
}

func (f *fakeMembers) SaveMember(_ context.Context, member entities.Member) error {
	f.members[member.AccountID] = member
	return nil
}

func (f *fakeMembers) GetMember(_ context.Context, accountID string) (entities.Member, error) {
	member, ok := f.members[accountID]
	if !ok {
		return entities.Member{}, domainerrors.ErrNotAMember
	}
	return member, nil
}

func (f *fakeMembers) HasMember(_ context.Context, accountID string) (bool, error) {
	_, ok := f.members[accountID]
	return ok, nil
}

func (f *fakeMembers) AllocateMemberID(_ context.Context) (uint32, error) {
	if f.nextID == math.MaxUint32 {
		return 0, domainerrors.ErrOverflow
	}
	f.nextID++
	return f.nextID, nil
}

type fakeOutbox struct {
	messages []ports.OutboxMessage
}

func (f *fakeOutbox) AppendOutbox(_ context.Context, message ports.OutboxMessage) error {
	f.messages = append(f.messages, message)
	return nil
}

type fixedClock struct {
	height uint64
}

func (c fixedClock) Now() uint64 { return c.height }

type seqIDGen struct {
	n int
}

func (g *seqIDGen) NewID(_ context.Context) (string, error) {
	g.n++
	return string(rune('a' + g.n)), nil
}

func newUseCase(members *fakeMembers, outbox *fakeOutbox) MembershipUseCase {
	return MembershipUseCase{
		Members:        members,
		Outbox:         outbox,
		Clock:          fixedClock{height: 7},
		IDGen:          &seqIDGen{},
		AdminAccountID: "admin",
	}
}

func TestJoinCreatesQualifierOnce(t *testing.T) {
	members := newFakeMembers()
	outbox := &fakeOutbox{}
	uc := newUseCase(members, outbox)

	member, err := uc.Join(context.Background(), JoinCommand{AccountID: "alice", Metadata: []byte("m")})
	if err != nil {
		t.Fatalf("join failed: %v", err)
	}
	if member.MemberID != 1 {
		t.Fatalf("expected member id 1, got %d", member.MemberID)
	}
	if member.Role != entities.RoleQualifier {
		t.Fatalf("expected qualifier role, got %s", member.Role)
	}
	if member.Joined != 7 {
		t.Fatalf("expected joined height 7, got %d", member.Joined)
	}
	if len(outbox.messages) != 1 {
		t.Fatalf("expected one outbox message, got %d", len(outbox.messages))
	}

	if _, err := uc.Join(context.Background(), JoinCommand{AccountID: "alice"}); !errors.Is(err, domainerrors.ErrAlreadyMember) {
		t.Fatalf("expected ErrAlreadyMember on second join, got %v", err)
	}
}

func TestSetMembershipRequiresAdmin(t *testing.T) {
	uc := newUseCase(newFakeMembers(), &fakeOutbox{})

	_, err := uc.SetMembership(context.Background(), SetMembershipCommand{
		CallerID:  "mallory",
		AccountID: "bob",
		RoleCode:  2,
	})
	if !errors.Is(err, domainerrors.ErrNotAuthorized) {
		t.Fatalf("expected ErrNotAuthorized, got %v", err)
	}
}

func TestSetMembershipMapsRoleCodes(t *testing.T) {
	cases := []struct {
		code uint8
		want entities.Role
	}{
		{1, entities.RoleQualifier},
		{2, entities.RoleContributor},
		{3, entities.RoleVerifier},
		{4, entities.RoleExpert},
		{5, entities.RoleCollector},
		{0, entities.RoleNone},
		{9, entities.RoleNone},
	}
	for _, tc := range cases {
		uc := newUseCase(newFakeMembers(), &fakeOutbox{})
		member, err := uc.SetMembership(context.Background(), SetMembershipCommand{
			CallerID:  "admin",
			AccountID: "bob",
			RoleCode:  tc.code,
		})
		if err != nil {
			t.Fatalf("set membership with code %d failed: %v", tc.code, err)
		}
		if member.Role != tc.want {
			t.Fatalf("code %d: expected role %s, got %s", tc.code, tc.want, member.Role)
		}
	}
}

func TestSetMembershipRejectsExistingMember(t *testing.T) {
	members := newFakeMembers()
	uc := newUseCase(members, &fakeOutbox{})

	if _, err := uc.SetMembership(context.Background(), SetMembershipCommand{CallerID: "admin", AccountID: "bob", RoleCode: 3}); err != nil {
		t.Fatalf("first assignment failed: %v", err)
	}
	if _, err := uc.SetMembership(context.Background(), SetMembershipCommand{CallerID: "admin", AccountID: "bob", RoleCode: 3}); !errors.Is(err, domainerrors.ErrAlreadyMember) {
		t.Fatalf("expected ErrAlreadyMember, got %v", err)
	}
}

func TestRecordVoteCastPromotesAtThreshold(t *testing.T) {
	members := newFakeMembers()
	uc := newUseCase(members, &fakeOutbox{})
	members.members["alice"] = entities.Member{
		MemberID:  1,
		AccountID: "alice",
		VoteCount: 9,
		Role:      entities.RoleQualifier,
	}

	if err := uc.RecordVoteCast(context.Background(), "alice"); err != nil {
		t.Fatalf("record vote cast failed: %v", err)
	}
	member := members.members["alice"]
	if member.VoteCount != 10 {
		t.Fatalf("expected vote count 10, got %d", member.VoteCount)
	}
	if member.Role != entities.RoleContributor {
		t.Fatalf("expected threshold promotion to contributor, got %s", member.Role)
	}
}

func TestRecordVoteCastPromotesRegardlessOfRole(t *testing.T) {
	members := newFakeMembers()
	uc := newUseCase(members, &fakeOutbox{})
	members.members["vera"] = entities.Member{
		AccountID: "vera",
		VoteCount: 9,
		Role:      entities.RoleVerifier,
	}

	if err := uc.RecordVoteCast(context.Background(), "vera"); err != nil {
		t.Fatalf("record vote cast failed: %v", err)
	}
	if got := members.members["vera"].Role; got != entities.RoleContributor {
		t.Fatalf("expected forced contributor role, got %s", got)
	}
}

func TestRecordVoteCastOverflow(t *testing.T) {
	members := newFakeMembers()
	uc := newUseCase(members, &fakeOutbox{})
	members.members["alice"] = entities.Member{
		AccountID: "alice",
		VoteCount: math.MaxUint64,
		Role:      entities.RoleContributor,
	}

	if err := uc.RecordVoteCast(context.Background(), "alice"); !errors.Is(err, domainerrors.ErrOverflow) {
		t.Fatalf("expected ErrOverflow, got %v", err)
	}
}

func TestPromoteOverwritesRole(t *testing.T) {
	members := newFakeMembers()
	uc := newUseCase(members, &fakeOutbox{})
	members.members["carol"] = entities.Member{
		AccountID: "carol",
		Role:      entities.RoleContributor,
	}

	if err := uc.Promote(context.Background(), "carol", entities.RoleVerifier); err != nil {
		t.Fatalf("promote failed: %v", err)
	}
	if got := members.members["carol"].Role; got != entities.RoleVerifier {
		t.Fatalf("expected verifier role, got %s", got)
	}
	if err := uc.Promote(context.Background(), "dave", entities.RoleVerifier); !errors.Is(err, domainerrors.ErrNotAMember) {
		t.Fatalf("expected ErrNotAMember for unknown account, got %v", err)
	}
}
