package repository

import (
	"testing"

	"team-task-backend/internal/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// UserRepositoryTestSuite tests the UserRepository
type UserRepositoryTestSuite struct {
	suite.Suite
	setup         func(t *testing.T) *testutils.BaseTestSuite
	baseTestSuite *testutils.BaseTestSuite
	repo          *UserRepository
	factories     *testutils.FactorySet
}

// SetupSuite runs before all tests in the suite
func (suite *UserRepositoryTestSuite) SetupSuite() {
	suite.baseTestSuite = suite.setup(suite.T())

	suite.repo = NewUserRepository(suite.baseTestSuite.DB)
	suite.factories = testutils.NewFactorySet()
}

// TearDownSuite runs after all tests in the suite
func (suite *UserRepositoryTestSuite) TearDownSuite() {
	suite.baseTestSuite.TeardownTestSuite()
}

// SetupTest runs before each test
func (suite *UserRepositoryTestSuite) SetupTest() {
	suite.baseTestSuite.SetupTest()
}

// TearDownTest runs after each test
func (suite *UserRepositoryTestSuite) TearDownTest() {
	suite.baseTestSuite.TearDownTest()
}

// TestCreate tests creating a new user
func (suite *UserRepositoryTestSuite) TestCreate() {
	user := suite.factories.User.Create()
	user.ID = uuid.Nil

	err := suite.repo.Create(user)

	suite.NoError(err)
	suite.NotEqual(uuid.Nil, user.ID)
	suite.NotZero(user.CreatedAt)
	suite.NotZero(user.UpdatedAt)
}

// TestCreateDuplicateUsername tests the unique index on username
func (suite *UserRepositoryTestSuite) TestCreateDuplicateUsername() {
	first := suite.factories.User.WithUsername("john_doe")
	suite.Require().NoError(suite.repo.Create(first))

	second := suite.factories.User.Create()
	second.Username = "john_doe"

	err := suite.repo.Create(second)
	suite.ErrorIs(err, gorm.ErrDuplicatedKey)
}

// TestCreateDuplicateEmail tests the unique index on email
func (suite *UserRepositoryTestSuite) TestCreateDuplicateEmail() {
	first := suite.factories.User.WithEmail("john@example.com")
	suite.Require().NoError(suite.repo.Create(first))

	second := suite.factories.User.WithEmail("john@example.com")

	err := suite.repo.Create(second)
	suite.ErrorIs(err, gorm.ErrDuplicatedKey)
}

// TestGetByID tests retrieving a user by ID
func (suite *UserRepositoryTestSuite) TestGetByID() {
	user := suite.factories.User.Create()
	suite.Require().NoError(suite.repo.Create(user))

	found, err := suite.repo.GetByID(user.ID)

	suite.NoError(err)
	suite.Equal(user.Username, found.Username)
	suite.Equal(user.Email, found.Email)
}

// TestGetByIDNotFound tests retrieving a missing user
func (suite *UserRepositoryTestSuite) TestGetByIDNotFound() {
	found, err := suite.repo.GetByID(uuid.New())

	suite.ErrorIs(err, gorm.ErrRecordNotFound)
	suite.Nil(found)
}

// TestGetByUsernameOrEmail tests identifier resolution for login and invite
func (suite *UserRepositoryTestSuite) TestGetByUsernameOrEmail() {
	user := suite.factories.User.WithUsername("jane_doe")
	suite.Require().NoError(suite.repo.Create(user))

	byName, err := suite.repo.GetByUsernameOrEmail("jane_doe")
	suite.NoError(err)
	suite.Equal(user.ID, byName.ID)

	byEmail, err := suite.repo.GetByUsernameOrEmail("Jane_Doe@Test.com")
	suite.NoError(err)
	suite.Equal(user.ID, byEmail.ID)

	_, err = suite.repo.GetByUsernameOrEmail("nobody@test.com")
	suite.ErrorIs(err, gorm.ErrRecordNotFound)
}

// TestUserRepositoryTestSuite runs the user repository suite on in-memory SQLite
func TestUserRepositoryTestSuite(t *testing.T) {
	suite.Run(t, &UserRepositoryTestSuite{setup: testutils.SetupSQLiteTestSuite})
}
