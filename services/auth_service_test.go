package services

import (
	"context"
	"testing"
	"time"

	"staydesk/constants"
	"staydesk/errors"
	"staydesk/testutil"
	"staydesk/types"
)

func TestBootstrapAdminAndLogin(t *testing.T) {
	db := testutil.OpenDB(t)
	ct, _ := newTestContainer(t, db)
	ctx := context.Background()

	if err := ct.Auth.BootstrapAdmin(ctx, "admin@staydesk.test", "s3cret-pass"); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	// lần hai không tạo thêm
	if err := ct.Auth.BootstrapAdmin(ctx, "other@staydesk.test", "s3cret-pass"); err != nil {
		t.Fatalf("bootstrap again: %v", err)
	}
	if n, _ := ct.Operators.Count(ctx); n != 1 {
		t.Fatalf("got %d operators, want 1", n)
	}

	token, expires, op, err := ct.Auth.Login(ctx, " Admin@StayDesk.test", "s3cret-pass")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if op.Role != constants.RoleAdmin || !expires.After(time.Now()) {
		t.Fatalf("got role %d expires %v", op.Role, expires)
	}
	info, err := ct.Tokens.ParseOperatorToken(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if info.OperatorID != op.ID || info.PropertyID != "" {
		t.Fatalf("got %+v", info)
	}

	_, _, _, err = ct.Auth.Login(ctx, "admin@staydesk.test", "wrong")
	wantCode(t, err, errors.ErrCodeAuthFailed)
	_, _, _, err = ct.Auth.Login(ctx, "nobody@staydesk.test", "s3cret-pass")
	wantCode(t, err, errors.ErrCodeAuthFailed)
}

func TestCreateOperatorRejectsDuplicateEmail(t *testing.T) {
	db := testutil.OpenDB(t)
	fx := testutil.Seed(t, db, testutil.SeedOptions{Units: 1})
	ct, _ := newTestContainer(t, db)
	ctx := context.Background()

	pid := fx.Property.ID
	op, err := ct.Auth.CreateOperator(ctx, "Desk", "Desk@Seaside.test", "password1", constants.RoleStaff, &pid)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if op.Email != "desk@seaside.test" {
		t.Fatalf("got email %s", op.Email)
	}
	_, err = ct.Auth.CreateOperator(ctx, "Desk 2", "desk@seaside.test", "password2", constants.RoleStaff, &pid)
	wantCode(t, err, errors.ErrCodeInvalidRequest)

	token, _, _, err := ct.Auth.Login(ctx, "desk@seaside.test", "password1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	info, err := ct.Tokens.ParseOperatorToken(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if info.PropertyID != pid || info.CanAccess("other-property") {
		t.Fatalf("got %+v", info)
	}
}

func TestParseOperatorTokenRejectsForeignAndExpired(t *testing.T) {
	issuer := NewTokenIssuer("secret-a", time.Hour)
	other := NewTokenIssuer("secret-b", time.Hour)
	token, _, err := issuer.IssueOperatorToken(types.OperatorInfo{OperatorID: "op-1", Role: constants.RoleManager})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	_, err = other.ParseOperatorToken(token)
	wantCode(t, err, errors.ErrCodeAuthFailed)

	issuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, _, err := issuer.IssueOperatorToken(types.OperatorInfo{OperatorID: "op-1"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	_, err = issuer.ParseOperatorToken(expired)
	wantCode(t, err, errors.ErrCodeAuthFailed)

	_, err = issuer.ParseOperatorToken("not-a-token")
	wantCode(t, err, errors.ErrCodeAuthFailed)
}
