package importers

import (
	"context"
	"strings"
	"testing"

	"github.com/aclindsa/ofxgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillback/spendsort/internal/model"
)

// Sample OFX data for testing.
const sampleBankOFX = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20240315120000[0:GMT]
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
<BANKMSGSRSV1>
<STMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<STMTRS>
<CURDEF>USD
<BANKACCTFROM>
<BANKID>123456789
<ACCTID>1234567890
<ACCTTYPE>CHECKING
</BANKACCTFROM>
<BANKTRANLIST>
<DTSTART>20240101120000[0:GMT]
<DTEND>20240131120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240115120000[0:GMT]
<TRNAMT>-25.50
<FITID>2024011501
<NAME>STARBUCKS STORE #1234
</STMTTRN>
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240120120000[0:GMT]
<TRNAMT>-125.00
<FITID>2024012001
<NAME>Whole Foods Market
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>1000.00
<DTASOF>20240131120000[0:GMT]
</LEDGERBAL>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
</OFX>`

const sampleCreditCardOFX = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20240315120000[0:GMT]
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
<CREDITCARDMSGSRSV1>
<CCSTMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<CCSTMTRS>
<CURDEF>USD
<CCACCTFROM>
<ACCTID>4111111111111111
</CCACCTFROM>
<BANKTRANLIST>
<DTSTART>20240101120000[0:GMT]
<DTEND>20240131120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240115120000[0:GMT]
<TRNAMT>-15.00
<FITID>CC2024011501
<NAME>NETFLIX.COM
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>-500.00
<DTASOF>20240131120000[0:GMT]
</LEDGERBAL>
</CCSTMTRS>
</CCSTMTTRNRS>
</CREDITCARDMSGSRSV1>
</OFX>`

func TestOFXParseBankStatement(t *testing.T) {
	importer := NewOFXImporter()

	transactions, err := importer.Parse(context.Background(), strings.NewReader(sampleBankOFX))
	require.NoError(t, err)
	require.Len(t, transactions, 2)

	first := transactions[0]
	assert.Equal(t, "2024011501", first.ID)
	assert.Equal(t, "1234567890", first.AccountID)
	assert.Equal(t, "USD", first.Currency)
	assert.Equal(t, model.SourceOFX, first.Source)
	assert.Equal(t, "-25.5", first.Amount.String())
	assert.NotEmpty(t, first.Hash)

	// OFX carries no provider category labels.
	assert.False(t, first.HasProviderPrimary())
	assert.False(t, first.HasProviderSecondary())
	assert.False(t, first.HasProviderCode())
}

func TestOFXParseCreditCardStatement(t *testing.T) {
	importer := NewOFXImporter()

	transactions, err := importer.Parse(context.Background(), strings.NewReader(sampleCreditCardOFX))
	require.NoError(t, err)
	require.Len(t, transactions, 1)

	assert.Equal(t, "CC2024011501", transactions[0].ID)
	assert.Equal(t, "4111111111111111", transactions[0].AccountID)
	assert.Equal(t, "NETFLIX.COM", transactions[0].Merchant)
}

func TestOFXParseInvalidData(t *testing.T) {
	importer := NewOFXImporter()

	_, err := importer.Parse(context.Background(), strings.NewReader("this is not OFX"))
	assert.Error(t, err)
}

func TestExtractMerchantName(t *testing.T) {
	importer := NewOFXImporter()

	tests := []struct {
		name     string
		txnName  string
		memo     string
		expected string
	}{
		{
			name:     "plain merchant name",
			txnName:  "Whole Foods Market",
			expected: "Whole Foods Market",
		},
		{
			name:     "strips POS prefix",
			txnName:  "POS PURCHASE STARBUCKS #123",
			expected: "STARBUCKS #123",
		},
		{
			name:     "strips check card prefix",
			txnName:  "CHECK CARD CHIPOTLE 0456",
			expected: "CHIPOTLE 0456",
		},
		{
			name:     "strips leading date",
			txnName:  "03/15 TRADER JOES",
			expected: "TRADER JOES",
		},
		{
			name:     "falls back to memo for generic names",
			txnName:  "DEBIT",
			memo:     "NETFLIX.COM",
			expected: "NETFLIX.COM",
		},
		{
			name:     "keeps specific name over memo",
			txnName:  "Whole Foods Market",
			memo:     "grocery run",
			expected: "Whole Foods Market",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := ofxgo.Transaction{
				Name: ofxgo.String(tt.txnName),
				Memo: ofxgo.String(tt.memo),
			}
			assert.Equal(t, tt.expected, importer.extractMerchantName(tx))
		})
	}
}

func TestExtractMerchantNamePrefersPayee(t *testing.T) {
	importer := NewOFXImporter()

	tx := ofxgo.Transaction{
		Name:  ofxgo.String("POS PURCHASE 123456"),
		Payee: &ofxgo.Payee{Name: ofxgo.String("Chipotle Mexican Grill")},
	}
	assert.Equal(t, "Chipotle Mexican Grill", importer.extractMerchantName(tx))
}

func TestIsGenericDescription(t *testing.T) {
	assert.True(t, isGenericDescription("DEBIT"))
	assert.True(t, isGenericDescription("purchase"))
	assert.False(t, isGenericDescription("STARBUCKS"))
}
