package wallet

// Wallet derived from password "toto" under DefaultTemplate.
const (
	testPassword = "toto"
	testMnemonic = "celery net original hire stand seminar cricket reject draft hundred hybrid dry three chair sea enable perfect this good race tooth junior beyond since"
	testEntropy  = "25129672b60d49870cdda741ede5c021de104bb07a4aa31c1991d83e4cf24576"
	testRootHex  = "28c350a3249bae18c393bde4f0e3102f4980032fbf63b6fb8095f0ad13ee6a54" +
		"76febaa3bb882589ce190cd46a2920704470b359abe022ca9c2882200bc5c47a" +
		"8d71aed24d42ef4c35b7047e47f26b6ec8e649f23afde61d9f0ced9febb51a3e"
	testXPrv = "xprv19rp4pgeynwhp3sunhhj0pccs9aycqqe0ha3md7uqjhc26ylwdf28dl465wacsfvfecvse4r29ys8q3rskdv6hcpze2wz3q3qp0zug75dwxhdyn2zaaxrtdcy0erly6mwernynu36lhnpm8cvak07hdg68cypc665"

	testAddress     = "addr_test1vp56y7ejmwfjqu9k5pgcwpp855rc5zx3ytkf3w83u6w2dyqrdr5da"
	testBaseAddress = "addr_test1qp56y7ejmwfjqu9k5pgcwpp855rc5zx3ytkf3w83u6w2dyyf480xvenplvfftvdm3enxgyfzeqz9z50j8kfracd8tlksx7fcy6"
	testMainnetAddr = "addr1v956y7ejmwfjqu9k5pgcwpp855rc5zx3ytkf3w83u6w2dyqc9hgzc"

	testPaymentKey = "607b34b394533c711856910cda4a1696bd59aa8fbdc3b52c4559dd292aee6a54" +
		"bfded2a15d1fc3a432f16e93a301848bcb48ebe04cfdace05e585b4fe30a59b8"
	testPaymentChain = "980a563a543a9e9d53047c909ed6f46759b92d11b5f5c0d36842c953cfe8ef0c"
	testPaymentPub   = "b396c7d035b1dc0d882f226ada1315fe419f3d1f39b3f5c4420b42b2ea82aafe"
	testStakePub     = "e1031e4cba7f6f7b4c5ac76ba7b61facaf5a4b663191561895e734a7d2847a95"

	// A recipient that is not the test wallet.
	testRecipient = "addr_test1vrc8c5xaqdmvv4qmuykrc4qpdhqyu4l6k7xtlhnumwj572qw8m2p3"
)
