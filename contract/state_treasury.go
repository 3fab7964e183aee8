package contract

import (
	"charity_dao/contract/dao"
	"charity_dao/sdk"
)

// getTreasuryBalance reads the pooled balance from the ledger.
func getTreasuryBalance(l sdk.Ledger) (dao.Amount, error) {
	bal, err := l.BalanceOf(sdk.TreasuryAddress)
	if err != nil {
		return 0, err
	}
	return dao.Amount(bal), nil
}

// addTreasuryFunds pulls amount from the depositor into the treasury.
func addTreasuryFunds(l sdk.Ledger, from sdk.Address, amount dao.Amount) error {
	return l.Transfer(from, sdk.TreasuryAddress, int64(amount))
}

// removeTreasuryFunds releases amount from the treasury to the recipient.
func removeTreasuryFunds(l sdk.Ledger, to sdk.Address, amount dao.Amount) error {
	return l.Transfer(sdk.TreasuryAddress, to, int64(amount))
}
