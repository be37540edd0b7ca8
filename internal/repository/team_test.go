package repository

import (
	"testing"
	"time"

	"team-task-backend/internal/database/models"
	"team-task-backend/internal/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// TeamRepositoryTestSuite tests the TeamRepository
type TeamRepositoryTestSuite struct {
	suite.Suite
	setup         func(t *testing.T) *testutils.BaseTestSuite
	baseTestSuite *testutils.BaseTestSuite
	repo          *TeamRepository
	userRepo      *UserRepository
	memberRepo    *TeamMemberRepository
	factories     *testutils.FactorySet
}

// SetupSuite runs before all tests in the suite
func (suite *TeamRepositoryTestSuite) SetupSuite() {
	suite.baseTestSuite = suite.setup(suite.T())

	suite.repo = NewTeamRepository(suite.baseTestSuite.DB)
	suite.userRepo = NewUserRepository(suite.baseTestSuite.DB)
	suite.memberRepo = NewTeamMemberRepository(suite.baseTestSuite.DB)
	suite.factories = testutils.NewFactorySet()
}

// TearDownSuite runs after all tests in the suite
func (suite *TeamRepositoryTestSuite) TearDownSuite() {
	suite.baseTestSuite.TeardownTestSuite()
}

// SetupTest runs before each test
func (suite *TeamRepositoryTestSuite) SetupTest() {
	suite.baseTestSuite.SetupTest()
}

// TearDownTest runs after each test
func (suite *TeamRepositoryTestSuite) TearDownTest() {
	suite.baseTestSuite.TearDownTest()
}

func (suite *TeamRepositoryTestSuite) createTeam(name string) (*models.User, *models.Team, *models.TeamMember) {
	creator, team, owner := suite.factories.CreateTeamWithCreator()
	team.Name = name
	suite.Require().NoError(suite.userRepo.Create(creator))
	suite.Require().NoError(suite.repo.CreateWithOwner(team, owner))
	return creator, team, owner
}

// TestCreateWithOwner tests that the team and the owner's admin membership are both stored
func (suite *TeamRepositoryTestSuite) TestCreateWithOwner() {
	creator, team, owner := suite.createTeam("Backend")

	suite.NotEqual(uuid.Nil, team.ID)
	suite.Equal(team.ID, owner.TeamID)

	stored, err := suite.memberRepo.GetByTeamAndUser(team.ID, creator.ID)
	suite.NoError(err)
	suite.Equal(models.TeamRoleAdmin, stored.Role)
}

// TestCreateWithOwnerRollsBack tests that a failed membership insert leaves no team behind
func (suite *TeamRepositoryTestSuite) TestCreateWithOwnerRollsBack() {
	creator, _, owner := suite.createTeam("Backend")

	team := suite.factories.Team.WithCreator(creator.ID)
	clash := suite.factories.TeamMember.Admin(team.ID, creator.ID)
	clash.ID = owner.ID

	err := suite.repo.CreateWithOwner(team, clash)
	suite.Error(err)

	_, err = suite.repo.GetByID(team.ID)
	suite.ErrorIs(err, gorm.ErrRecordNotFound)
}

// TestGetByIDNotFound tests retrieving a missing team
func (suite *TeamRepositoryTestSuite) TestGetByIDNotFound() {
	team, err := suite.repo.GetByID(uuid.New())

	suite.ErrorIs(err, gorm.ErrRecordNotFound)
	suite.Nil(team)
}

// TestGetWithMembers tests that memberships come back with their users in join order
func (suite *TeamRepositoryTestSuite) TestGetWithMembers() {
	creator, team, _ := suite.createTeam("Backend")

	invitee := suite.factories.User.Create()
	suite.Require().NoError(suite.userRepo.Create(invitee))
	membership := suite.factories.TeamMember.Create(team.ID, invitee.ID)
	membership.CreatedAt = time.Now().Add(time.Minute)
	suite.Require().NoError(suite.memberRepo.Create(membership))

	found, err := suite.repo.GetWithMembers(team.ID)

	suite.NoError(err)
	suite.Require().NotNil(found.CreatedBy)
	suite.Equal(creator.Username, found.CreatedBy.Username)
	suite.Require().Len(found.Members, 2)
	suite.Equal(creator.ID, found.Members[0].UserID)
	suite.Equal(models.TeamRoleAdmin, found.Members[0].Role)
	suite.Equal(invitee.ID, found.Members[1].UserID)
	suite.Require().NotNil(found.Members[1].User)
	suite.Equal(invitee.Username, found.Members[1].User.Username)
}

// TestGetByUserID tests that only the user's own teams are listed
func (suite *TeamRepositoryTestSuite) TestGetByUserID() {
	creator, mine, _ := suite.createTeam("Mine")
	_, _, _ = suite.createTeam("Theirs")

	teams, err := suite.repo.GetByUserID(creator.ID)

	suite.NoError(err)
	suite.Require().Len(teams, 1)
	suite.Equal(mine.ID, teams[0].ID)
	suite.Len(teams[0].Members, 1)
}

// TestGetByUserIDEmpty tests a user without teams
func (suite *TeamRepositoryTestSuite) TestGetByUserIDEmpty() {
	teams, err := suite.repo.GetByUserID(uuid.New())

	suite.NoError(err)
	suite.Empty(teams)
}

// TestTeamRepositoryTestSuite runs the team repository suite on in-memory SQLite
func TestTeamRepositoryTestSuite(t *testing.T) {
	suite.Run(t, &TeamRepositoryTestSuite{setup: testutils.SetupSQLiteTestSuite})
}
