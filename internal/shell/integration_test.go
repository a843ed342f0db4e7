package shell

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"banking-ledger/internal/config"
	"banking-ledger/internal/domain"
	"banking-ledger/internal/logging"
	"banking-ledger/internal/repository"
)

type IntegrationTestSuite struct {
	suite.Suite
	store *repository.Store
	shell *Shell
	out   bytes.Buffer

	ada, alan   uuid.UUID
	checking    uuid.UUID
	savings     uuid.UUID
	alanAccount uuid.UUID
}

func (suite *IntegrationTestSuite) SetupSuite() {
	suite.store = repository.NewStore(logging.Discard())
	suite.shell = New(config.Default(), suite.store, logging.Discard(), Options{Out: &suite.out})
}

// run executes one command and returns what it printed.
func (suite *IntegrationTestSuite) run(line string) string {
	suite.out.Reset()
	quit := suite.shell.Execute(line)
	assert.False(suite.T(), quit)
	output := suite.out.String()
	suite.T().Logf("%s\n%s", line, output)
	return output
}

func (suite *IntegrationTestSuite) accountsOf(clientID uuid.UUID) []domain.Account {
	accounts, err := suite.store.Account().ListAccountsByClient(clientID)
	suite.Require().NoError(err)
	return accounts
}

func (suite *IntegrationTestSuite) assertBalance(accountID uuid.UUID, expected string) {
	account, err := suite.store.Account().GetAccount(accountID)
	suite.Require().NoError(err)
	assert.True(suite.T(), dec(expected).Equal(account.Balance),
		"Decimal values not equal: expected %s, got %s", expected, account.Balance)
}

// ------------------------------------------------------------------
// Steps run in the order listed in TestFlow; each builds on the state
// the previous ones left behind.
// ------------------------------------------------------------------

func (suite *IntegrationTestSuite) stepCreateClients() {
	out := suite.run("client create Ada Lovelace")
	assert.Contains(suite.T(), out, "✅ Client added: ")
	assert.Contains(suite.T(), out, "(Ada Lovelace)")

	suite.run("client create Alan Turing")

	clients, err := suite.store.Client().ListClients()
	suite.Require().NoError(err)
	suite.Require().Len(clients, 2)
	suite.ada, suite.alan = clients[0].ID, clients[1].ID

	out = suite.run("client list")
	assert.Contains(suite.T(), out, "✅ 2 clients:\n")
	assert.Contains(suite.T(), out, "| "+suite.ada.String()+" Ada Lovelace\n")
}

func (suite *IntegrationTestSuite) stepOpenAccounts() {
	out := suite.run("account open " + suite.ada.String() + " 1000.50")
	assert.Contains(suite.T(), out, "(balance 1000.50€)")
	suite.run("account open " + suite.ada.String() + " 500.25")
	suite.run("account open " + suite.alan.String() + " 1.50")

	adaAccounts := suite.accountsOf(suite.ada)
	suite.Require().Len(adaAccounts, 2)
	suite.checking, suite.savings = adaAccounts[0].ID, adaAccounts[1].ID

	alanAccounts := suite.accountsOf(suite.alan)
	suite.Require().Len(alanAccounts, 1)
	suite.alanAccount = alanAccounts[0].ID

	out = suite.run("account show " + suite.ada.String() + " " + suite.savings.String())
	assert.Contains(suite.T(), out, "  Owner: Ada Lovelace\n")
	assert.Contains(suite.T(), out, "  Balance: 500.25€\n")

	out = suite.run("account show " + suite.alan.String() + " " + suite.savings.String())
	assert.Contains(suite.T(), out, "❌ account does not belong to client")
}

func (suite *IntegrationTestSuite) stepDepositAndWithdraw() {
	out := suite.run("deposit " + suite.checking.String() + " 99.50")
	assert.Equal(suite.T(), "✅ deposit of 99.50€ done. New balance: 1100.00€\n", out)

	out = suite.run("withdraw " + suite.checking.String() + " 100")
	assert.Equal(suite.T(), "✅ withdrawal of 100.00€ done. New balance: 1000.00€\n", out)

	out = suite.run("withdraw " + suite.checking.String() + " 5000")
	assert.Equal(suite.T(), "❌ insufficient funds (balance 1000.00)\n", out)

	out = suite.run("deposit " + suite.checking.String() + " 0")
	assert.Contains(suite.T(), out, "❌ amount must be a positive number")

	suite.assertBalance(suite.checking, "1000.00")
}

func (suite *IntegrationTestSuite) stepTransfer() {
	out := suite.run("transfer " + suite.checking.String() + " " + suite.savings.String() + " 200.50")
	assert.Contains(suite.T(), out, "✅ Transfer of 200.50€ done\n")
	assert.Contains(suite.T(), out, "  "+suite.checking.String()+": 799.50€\n")
	assert.Contains(suite.T(), out, "  "+suite.savings.String()+": 700.75€\n")

	suite.assertBalance(suite.checking, "799.50")
	suite.assertBalance(suite.savings, "700.75")
}

func (suite *IntegrationTestSuite) stepRejectedTransfers() {
	out := suite.run("transfer " + suite.alanAccount.String() + " " + suite.checking.String() + " 10")
	assert.Equal(suite.T(), "❌ insufficient funds (balance 1.50)\n", out)

	out = suite.run("transfer " + suite.checking.String() + " " + suite.checking.String() + " 10")
	assert.Equal(suite.T(), "❌ cannot transfer to the same account\n", out)

	missing := uuid.New()
	out = suite.run("transfer " + suite.checking.String() + " " + missing.String() + " 10")
	assert.Equal(suite.T(), "❌ account not found (destination account "+missing.String()+")\n", out)

	suite.assertBalance(suite.checking, "799.50")
	suite.assertBalance(suite.alanAccount, "1.50")
}

func (suite *IntegrationTestSuite) stepHistory() {
	out := suite.run("history " + suite.checking.String())
	lines := strings.Split(strings.TrimSpace(out), "\n")
	suite.Require().Len(lines, 4)
	assert.Equal(suite.T(), "✅ Transactions of account "+suite.checking.String()+":", lines[0])
	assert.True(suite.T(), strings.HasPrefix(lines[1], "| deposit of 99.50€ on "))
	assert.True(suite.T(), strings.HasPrefix(lines[2], "| withdrawal of 100.00€ on "))
	assert.True(suite.T(), strings.HasPrefix(lines[3], "| transfer of 200.50€ to "+suite.savings.String()+" on "))

	out = suite.run("history " + suite.savings.String())
	assert.Contains(suite.T(), out, "| transfer of 200.50€ from "+suite.checking.String()+" on ")

	out = suite.run("history " + suite.alanAccount.String())
	assert.Equal(suite.T(), "✅ No transactions\n", out)
}

func (suite *IntegrationTestSuite) stepMonthlyFee() {
	out := suite.run("fee")
	assert.Contains(suite.T(), out,
		"❌ fee not applied to account "+suite.alanAccount.String()+": insufficient funds (balance 1.50)\n")
	assert.Contains(suite.T(), out, "✅ Monthly fee of 2.00€ applied to 2 of 3 accounts (total 4.00€)\n")

	suite.assertBalance(suite.checking, "797.50")
	suite.assertBalance(suite.savings, "698.75")
	suite.assertBalance(suite.alanAccount, "1.50")
}

func (suite *IntegrationTestSuite) stepAnnualInterest() {
	out := suite.run("interest")
	// 11.96 + 10.48 + 0.02
	assert.Equal(suite.T(), "✅ Annual interest of 1.5% credited to 3 of 3 accounts (total 22.46€)\n", out)

	suite.assertBalance(suite.checking, "809.46")
	suite.assertBalance(suite.savings, "709.23")
	suite.assertBalance(suite.alanAccount, "1.52")
}

func (suite *IntegrationTestSuite) stepTotals() {
	out := suite.run("client total " + suite.ada.String())
	assert.Equal(suite.T(), "✅ Client "+suite.ada.String()+" holds 1518.69€ in total\n", out)

	out = suite.run("bank total")
	assert.Equal(suite.T(), "✅ The bank holds 1520.21€ across 3 accounts\n", out)
}

func (suite *IntegrationTestSuite) stepCloseAccountAndClient() {
	out := suite.run("client delete " + suite.alan.String())
	assert.Equal(suite.T(), "❌ client still owns accounts (1 open accounts)\n", out)

	out = suite.run("account close " + suite.alanAccount.String())
	assert.Equal(suite.T(), "❌ account balance must be zero to delete (balance 1.52)\n", out)

	suite.run("withdraw " + suite.alanAccount.String() + " 1.52")
	out = suite.run("account close " + suite.alanAccount.String())
	assert.Equal(suite.T(), "✅ Account deleted\n", out)

	out = suite.run("client delete " + suite.alan.String())
	assert.Equal(suite.T(), "✅ Client deleted\n", out)

	// records of a closed account stay in the ledger
	records, err := suite.store.Transaction().ListTransactionsByAccount(suite.alanAccount)
	suite.Require().NoError(err)
	assert.Len(suite.T(), records, 2)

	out = suite.run("history " + suite.alanAccount.String())
	assert.Contains(suite.T(), out, "❌ account not found")
}

func (suite *IntegrationTestSuite) TestFlow() {
	suite.stepCreateClients()
	suite.stepOpenAccounts()
	suite.stepDepositAndWithdraw()
	suite.stepTransfer()
	suite.stepRejectedTransfers()
	suite.stepHistory()
	suite.stepMonthlyFee()
	suite.stepAnnualInterest()
	suite.stepTotals()
	suite.stepCloseAccountAndClient()
}

func TestIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(IntegrationTestSuite))
}
