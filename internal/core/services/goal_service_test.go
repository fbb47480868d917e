package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/famledger/family_finance_app/internal/apperrors"
	"github.com/famledger/family_finance_app/internal/core/domain"
	portssvc "github.com/famledger/family_finance_app/internal/core/ports/services"
	"github.com/famledger/family_finance_app/internal/core/services"
	"github.com/famledger/family_finance_app/internal/dto"
)

type GoalServiceTestSuite struct {
	suite.Suite
	mockGoalRepo *MockGoalRepository
	mockUserRepo *MockUserRepository
	service      portssvc.GoalSvcFacade
}

func (suite *GoalServiceTestSuite) SetupTest() {
	suite.mockGoalRepo = new(MockGoalRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewGoalService(suite.mockGoalRepo, suite.mockUserRepo, nil)
}

func (suite *GoalServiceTestSuite) goal(saved, target int64) *domain.Goal {
	return &domain.Goal{
		GoalID:       "goal-1",
		UserID:       "user-1",
		Name:         "Vacation",
		TargetAmount: decimal.NewFromInt(target),
		SavedAmount:  decimal.NewFromInt(saved),
		Status:       domain.GoalStatusFor(decimal.NewFromInt(saved), decimal.NewFromInt(target)),
	}
}

func (suite *GoalServiceTestSuite) TestCreateGoal_StartsPending() {
	ctx := context.Background()

	suite.mockGoalRepo.On("SaveGoal", ctx, mock.MatchedBy(func(g domain.Goal) bool {
		return g.UserID == "user-1" &&
			g.SavedAmount.IsZero() &&
			g.Status == domain.GoalPending
	})).Return(nil).Once()

	goal, err := suite.service.CreateGoal(ctx, "user-1", dto.CreateGoalRequest{
		Name:         "Vacation",
		TargetAmount: decimal.NewFromInt(500),
	})

	suite.Require().NoError(err)
	suite.Equal(domain.GoalPending, goal.Status)
	suite.mockGoalRepo.AssertExpectations(suite.T())
}

func (suite *GoalServiceTestSuite) TestCreateGoal_RejectsNonPositiveTarget() {
	ctx := context.Background()

	_, err := suite.service.CreateGoal(ctx, "user-1", dto.CreateGoalRequest{
		Name:         "Vacation",
		TargetAmount: decimal.Zero,
	})

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockGoalRepo.AssertNotCalled(suite.T(), "SaveGoal", mock.Anything, mock.Anything)
}

func (suite *GoalServiceTestSuite) TestUpdateGoal_TargetChangeRecomputesStatus() {
	ctx := context.Background()
	newTarget := decimal.NewFromInt(200)

	suite.mockGoalRepo.On("FindGoalByID", ctx, "goal-1", "user-1").Return(suite.goal(200, 500), nil).Once()
	suite.mockGoalRepo.On("UpdateGoal", ctx, mock.MatchedBy(func(g domain.Goal) bool {
		return g.TargetAmount.Equal(newTarget) && g.Status == domain.GoalCompleted
	})).Return(nil).Once()

	updated, err := suite.service.UpdateGoal(ctx, "user-1", "goal-1", dto.UpdateGoalRequest{TargetAmount: &newTarget})

	suite.Require().NoError(err)
	suite.Equal(domain.GoalCompleted, updated.Status)
	suite.mockGoalRepo.AssertExpectations(suite.T())
}

func (suite *GoalServiceTestSuite) TestDeleteGoal_RefusedWhileFundsHeld() {
	ctx := context.Background()

	suite.mockGoalRepo.On("FindGoalByID", ctx, "goal-1", "user-1").Return(suite.goal(50, 500), nil).Once()

	err := suite.service.DeleteGoal(ctx, "user-1", "goal-1")

	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.ErrorIs(err, services.ErrGoalHoldsFunds)
	suite.mockGoalRepo.AssertNotCalled(suite.T(), "DeleteGoal", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *GoalServiceTestSuite) TestDeleteGoal_EmptyGoalRemoved() {
	ctx := context.Background()

	suite.mockGoalRepo.On("FindGoalByID", ctx, "goal-1", "user-1").Return(suite.goal(0, 500), nil).Once()
	suite.mockGoalRepo.On("DeleteGoal", ctx, "goal-1", "user-1").Return(nil).Once()

	err := suite.service.DeleteGoal(ctx, "user-1", "goal-1")

	suite.Require().NoError(err)
	suite.mockGoalRepo.AssertExpectations(suite.T())
}

func (suite *GoalServiceTestSuite) TestAddFunds_WritesExpenseEntryAndGoalUpdate() {
	ctx := context.Background()
	amount := decimal.NewFromInt(100)

	suite.mockGoalRepo.On("FindGoalByID", ctx, "goal-1", "user-1").Return(suite.goal(50, 500), nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, "user-1").
		Return(&domain.User{UserID: "user-1", Balance: decimal.NewFromInt(300)}, nil).Once()
	suite.mockGoalRepo.On("SaveGoalFunding", ctx, mock.MatchedBy(func(t domain.Transaction) bool {
		return t.CategoryID == domain.GoalFundingCategoryID &&
			t.Amount.Equal(decimal.NewFromInt(-100)) &&
			t.UserID == "user-1"
	}), mock.MatchedBy(func(g domain.Goal) bool {
		return g.SavedAmount.Equal(decimal.NewFromInt(150)) && g.Status == domain.GoalInProgress
	})).Return(nil).Once()

	updated, err := suite.service.AddFunds(ctx, "user-1", "goal-1", amount)

	suite.Require().NoError(err)
	suite.True(updated.SavedAmount.Equal(decimal.NewFromInt(150)))
	suite.mockGoalRepo.AssertExpectations(suite.T())
}

func (suite *GoalServiceTestSuite) TestAddFunds_CompletesGoalAtTarget() {
	ctx := context.Background()

	suite.mockGoalRepo.On("FindGoalByID", ctx, "goal-1", "user-1").Return(suite.goal(400, 500), nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, "user-1").
		Return(&domain.User{UserID: "user-1", Balance: decimal.NewFromInt(1000)}, nil).Once()
	suite.mockGoalRepo.On("SaveGoalFunding", ctx, mock.Anything, mock.MatchedBy(func(g domain.Goal) bool {
		return g.Status == domain.GoalCompleted
	})).Return(nil).Once()

	updated, err := suite.service.AddFunds(ctx, "user-1", "goal-1", decimal.NewFromInt(100))

	suite.Require().NoError(err)
	suite.Equal(domain.GoalCompleted, updated.Status)
}

func (suite *GoalServiceTestSuite) TestAddFunds_InsufficientBalance() {
	ctx := context.Background()

	suite.mockGoalRepo.On("FindGoalByID", ctx, "goal-1", "user-1").Return(suite.goal(0, 500), nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, "user-1").
		Return(&domain.User{UserID: "user-1", Balance: decimal.NewFromInt(20)}, nil).Once()

	_, err := suite.service.AddFunds(ctx, "user-1", "goal-1", decimal.NewFromInt(100))

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.ErrorIs(err, services.ErrInsufficientBalance)
	suite.mockGoalRepo.AssertNotCalled(suite.T(), "SaveGoalFunding", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *GoalServiceTestSuite) TestWithdrawFunds_WritesIncomeEntry() {
	ctx := context.Background()

	suite.mockGoalRepo.On("FindGoalByID", ctx, "goal-1", "user-1").Return(suite.goal(300, 500), nil).Once()
	suite.mockGoalRepo.On("SaveGoalFunding", ctx, mock.MatchedBy(func(t domain.Transaction) bool {
		return t.CategoryID == domain.GoalWithdrawalCategoryID &&
			t.Amount.Equal(decimal.NewFromInt(120))
	}), mock.MatchedBy(func(g domain.Goal) bool {
		return g.SavedAmount.Equal(decimal.NewFromInt(180)) && g.Status == domain.GoalInProgress
	})).Return(nil).Once()

	updated, err := suite.service.WithdrawFunds(ctx, "user-1", "goal-1", decimal.NewFromInt(120))

	suite.Require().NoError(err)
	suite.True(updated.SavedAmount.Equal(decimal.NewFromInt(180)))
	suite.mockGoalRepo.AssertExpectations(suite.T())
}

func (suite *GoalServiceTestSuite) TestWithdrawFunds_DrainingGoalGoesBackToPending() {
	ctx := context.Background()

	suite.mockGoalRepo.On("FindGoalByID", ctx, "goal-1", "user-1").Return(suite.goal(300, 500), nil).Once()
	suite.mockGoalRepo.On("SaveGoalFunding", ctx, mock.Anything, mock.MatchedBy(func(g domain.Goal) bool {
		return g.SavedAmount.IsZero() && g.Status == domain.GoalPending
	})).Return(nil).Once()

	updated, err := suite.service.WithdrawFunds(ctx, "user-1", "goal-1", decimal.NewFromInt(300))

	suite.Require().NoError(err)
	suite.Equal(domain.GoalPending, updated.Status)
}

func (suite *GoalServiceTestSuite) TestWithdrawFunds_MoreThanSavedRejected() {
	ctx := context.Background()

	suite.mockGoalRepo.On("FindGoalByID", ctx, "goal-1", "user-1").Return(suite.goal(100, 500), nil).Once()

	_, err := suite.service.WithdrawFunds(ctx, "user-1", "goal-1", decimal.NewFromInt(150))

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.ErrorIs(err, services.ErrInsufficientGoalFunds)
	suite.mockGoalRepo.AssertNotCalled(suite.T(), "SaveGoalFunding", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *GoalServiceTestSuite) TestTransferFunds_MovesSavedAmounts() {
	ctx := context.Background()
	source := suite.goal(200, 500)
	target := &domain.Goal{
		GoalID:       "goal-2",
		UserID:       "user-1",
		Name:         "Car",
		TargetAmount: decimal.NewFromInt(100),
		SavedAmount:  decimal.NewFromInt(40),
		Status:       domain.GoalInProgress,
	}

	suite.mockGoalRepo.On("FindGoalByID", ctx, "goal-1", "user-1").Return(source, nil).Once()
	suite.mockGoalRepo.On("FindGoalByID", ctx, "goal-2", "user-1").Return(target, nil).Once()
	suite.mockGoalRepo.On("TransferFunds", ctx, mock.MatchedBy(func(g domain.Goal) bool {
		return g.GoalID == "goal-1" && g.SavedAmount.Equal(decimal.NewFromInt(140))
	}), mock.MatchedBy(func(g domain.Goal) bool {
		return g.GoalID == "goal-2" &&
			g.SavedAmount.Equal(decimal.NewFromInt(100)) &&
			g.Status == domain.GoalCompleted
	})).Return(nil).Once()

	err := suite.service.TransferFundsBetweenGoals(ctx, "user-1", "goal-1", "goal-2", decimal.NewFromInt(60))

	suite.Require().NoError(err)
	suite.mockGoalRepo.AssertExpectations(suite.T())
}

func (suite *GoalServiceTestSuite) TestTransferFunds_SameGoalRejected() {
	ctx := context.Background()

	err := suite.service.TransferFundsBetweenGoals(ctx, "user-1", "goal-1", "goal-1", decimal.NewFromInt(10))

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.ErrorIs(err, services.ErrSameGoalTransfer)
	suite.mockGoalRepo.AssertNotCalled(suite.T(), "TransferFunds", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *GoalServiceTestSuite) TestTransferFunds_SourceShortOnFunds() {
	ctx := context.Background()

	suite.mockGoalRepo.On("FindGoalByID", ctx, "goal-1", "user-1").Return(suite.goal(30, 500), nil).Once()
	suite.mockGoalRepo.On("FindGoalByID", ctx, "goal-2", "user-1").Return(&domain.Goal{
		GoalID: "goal-2", UserID: "user-1", TargetAmount: decimal.NewFromInt(100),
	}, nil).Once()

	err := suite.service.TransferFundsBetweenGoals(ctx, "user-1", "goal-1", "goal-2", decimal.NewFromInt(60))

	suite.ErrorIs(err, services.ErrInsufficientGoalFunds)
	suite.mockGoalRepo.AssertNotCalled(suite.T(), "TransferFunds", mock.Anything, mock.Anything, mock.Anything)
}

func TestGoalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(GoalServiceTestSuite))
}
