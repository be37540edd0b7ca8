package repository

import (
	"testing"

	"team-task-backend/internal/database/models"
	"team-task-backend/internal/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// TeamMemberRepositoryTestSuite tests the TeamMemberRepository
type TeamMemberRepositoryTestSuite struct {
	suite.Suite
	setup         func(t *testing.T) *testutils.BaseTestSuite
	baseTestSuite *testutils.BaseTestSuite
	repo          *TeamMemberRepository
	userRepo      *UserRepository
	teamRepo      *TeamRepository
	factories     *testutils.FactorySet

	creator *models.User
	team    *models.Team
	owner   *models.TeamMember
}

// SetupSuite runs before all tests in the suite
func (suite *TeamMemberRepositoryTestSuite) SetupSuite() {
	suite.baseTestSuite = suite.setup(suite.T())

	suite.repo = NewTeamMemberRepository(suite.baseTestSuite.DB)
	suite.userRepo = NewUserRepository(suite.baseTestSuite.DB)
	suite.teamRepo = NewTeamRepository(suite.baseTestSuite.DB)
	suite.factories = testutils.NewFactorySet()
}

// TearDownSuite runs after all tests in the suite
func (suite *TeamMemberRepositoryTestSuite) TearDownSuite() {
	suite.baseTestSuite.TeardownTestSuite()
}

// SetupTest cleans the database and creates a team owned by a fresh creator
func (suite *TeamMemberRepositoryTestSuite) SetupTest() {
	suite.baseTestSuite.SetupTest()

	suite.creator, suite.team, suite.owner = suite.factories.CreateTeamWithCreator()
	suite.Require().NoError(suite.userRepo.Create(suite.creator))
	suite.Require().NoError(suite.teamRepo.CreateWithOwner(suite.team, suite.owner))
}

// TearDownTest runs after each test
func (suite *TeamMemberRepositoryTestSuite) TearDownTest() {
	suite.baseTestSuite.TearDownTest()
}

func (suite *TeamMemberRepositoryTestSuite) newUser() *models.User {
	user := suite.factories.User.Create()
	suite.Require().NoError(suite.userRepo.Create(user))
	return user
}

// TestCreate tests adding a member
func (suite *TeamMemberRepositoryTestSuite) TestCreate() {
	user := suite.newUser()
	membership := suite.factories.TeamMember.Create(suite.team.ID, user.ID)

	err := suite.repo.Create(membership)

	suite.NoError(err)
	found, err := suite.repo.GetByTeamAndUser(suite.team.ID, user.ID)
	suite.NoError(err)
	suite.Equal(models.TeamRoleMember, found.Role)
}

// TestCreateDuplicatePair tests the unique (team_id, user_id) index
func (suite *TeamMemberRepositoryTestSuite) TestCreateDuplicatePair() {
	user := suite.newUser()
	suite.Require().NoError(suite.repo.Create(suite.factories.TeamMember.Create(suite.team.ID, user.ID)))

	err := suite.repo.Create(suite.factories.TeamMember.Create(suite.team.ID, user.ID))

	suite.ErrorIs(err, gorm.ErrDuplicatedKey)
}

// TestGetByID tests that the membership comes back with its user
func (suite *TeamMemberRepositoryTestSuite) TestGetByID() {
	found, err := suite.repo.GetByID(suite.owner.ID)

	suite.NoError(err)
	suite.Equal(suite.team.ID, found.TeamID)
	suite.Require().NotNil(found.User)
	suite.Equal(suite.creator.Username, found.User.Username)
}

// TestGetByTeamAndUserNotMember tests the absent-membership outcome
func (suite *TeamMemberRepositoryTestSuite) TestGetByTeamAndUserNotMember() {
	_, err := suite.repo.GetByTeamAndUser(suite.team.ID, uuid.New())

	suite.ErrorIs(err, gorm.ErrRecordNotFound)
}

// TestGetByTeamID tests listing a team's memberships
func (suite *TeamMemberRepositoryTestSuite) TestGetByTeamID() {
	user := suite.newUser()
	suite.Require().NoError(suite.repo.Create(suite.factories.TeamMember.Create(suite.team.ID, user.ID)))

	members, err := suite.repo.GetByTeamID(suite.team.ID)

	suite.NoError(err)
	suite.Len(members, 2)
}

// TestDelete tests removing a membership
func (suite *TeamMemberRepositoryTestSuite) TestDelete() {
	user := suite.newUser()
	membership := suite.factories.TeamMember.Create(suite.team.ID, user.ID)
	suite.Require().NoError(suite.repo.Create(membership))

	suite.NoError(suite.repo.Delete(membership.ID))

	_, err := suite.repo.GetByID(membership.ID)
	suite.ErrorIs(err, gorm.ErrRecordNotFound)
}

// TestDeleteNotFound tests removing a membership that does not exist
func (suite *TeamMemberRepositoryTestSuite) TestDeleteNotFound() {
	err := suite.repo.Delete(uuid.New())

	suite.ErrorIs(err, gorm.ErrRecordNotFound)
}

// TestTeamMemberRepositoryTestSuite runs the membership repository suite on in-memory SQLite
func TestTeamMemberRepositoryTestSuite(t *testing.T) {
	suite.Run(t, &TeamMemberRepositoryTestSuite{setup: testutils.SetupSQLiteTestSuite})
}
